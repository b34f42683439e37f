package compliance

import (
	"reflect"
	"testing"
	"time"
)

var matrixNow = time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)

func matrixSnapshot() Snapshot {
	return Snapshot{
		Employees: []Employee{
			{ID: "e1", Name: "Ana", Email: "ana@example.com", Role: "manager"},
			{ID: "e2", Name: "Ben", Email: "ben@example.com", Role: "manager"},
			{ID: "e3", Name: "Cam", Email: "cam@example.com", Role: "clerk"},
		},
		Templates: []DocumentTemplate{
			{ID: "t1", Name: "Management Pack", IsActive: true, Version: 1},
		},
		Requirements: []TemplateRequirement{
			{ID: "r1", TemplateID: "t1", DocumentName: "Employment Contract", DocumentType: DocumentTypeContract, IsRequired: true, DisplayOrder: 1},
			{ID: "r2", TemplateID: "t1", DocumentName: "Conduct Policy", DocumentType: DocumentTypeOther, IsRequired: false, DisplayOrder: 2},
		},
		Assignments: []TemplateAssignment{
			{ID: "a1", TemplateID: "t1", Role: "manager"},
		},
		Records: []EmployeeDocumentRecord{
			{ID: "rec1", EmployeeID: "e1", RequirementID: "r1", FileRef: "orgs/o1/e1/contract.pdf", UploadedAt: matrixNow.Add(-72 * time.Hour), IsVerified: true},
		},
	}
}

func TestBuildMatrixRoleScenario(t *testing.T) {
	matrix := BuildMatrix(matrixSnapshot(), matrixNow, 30)

	// Both managers get the requirement, the clerk does not.
	if _, ok := matrix.Entries["e1"]["r1"]; !ok {
		t.Fatal("expected entry for manager e1")
	}
	if _, ok := matrix.Entries["e2"]["r1"]; !ok {
		t.Fatal("expected entry for manager e2")
	}
	if len(matrix.Entries["e3"]) != 0 {
		t.Fatalf("expected no entries for clerk, got %+v", matrix.Entries["e3"])
	}

	if matrix.Entries["e1"]["r1"].Status != StatusCompliant {
		t.Fatalf("expected e1 compliant, got %s", matrix.Entries["e1"]["r1"].Status)
	}
	if matrix.Entries["e2"]["r1"].Status != StatusMissing {
		t.Fatalf("expected e2 missing, got %s", matrix.Entries["e2"]["r1"].Status)
	}
}

func TestBuildMatrixStats(t *testing.T) {
	matrix := BuildMatrix(matrixSnapshot(), matrixNow, 30)

	// Required entries: e1/r1 compliant, e2/r1 missing. The optional r2
	// entries are tracked but excluded from required counts.
	if matrix.Stats.TotalRequired != 2 {
		t.Fatalf("expected totalRequired 2, got %d", matrix.Stats.TotalRequired)
	}
	if matrix.Stats.Compliant != 1 || matrix.Stats.Missing != 1 {
		t.Fatalf("unexpected stats: %+v", matrix.Stats)
	}
	if matrix.Stats.TotalTracked != 4 {
		t.Fatalf("expected totalTracked 4, got %d", matrix.Stats.TotalTracked)
	}
	if matrix.Stats.ComplianceRate != 50 {
		t.Fatalf("expected rate 50, got %v", matrix.Stats.ComplianceRate)
	}
	if matrix.Rates["e1"] != 100 || matrix.Rates["e2"] != 0 {
		t.Fatalf("unexpected per-employee rates: %+v", matrix.Rates)
	}
}

func TestBuildMatrixDeterministic(t *testing.T) {
	snap := matrixSnapshot()
	first := BuildMatrix(snap, matrixNow, 30)
	for i := 0; i < 5; i++ {
		if again := BuildMatrix(snap, matrixNow, 30); !reflect.DeepEqual(first, again) {
			t.Fatal("matrix differs between identical computations")
		}
	}
}

func TestBuildMatrixGroupOrdering(t *testing.T) {
	snap := matrixSnapshot()
	snap.Templates = append(snap.Templates, DocumentTemplate{ID: "t2", Name: "Alpha Pack", IsActive: true, Version: 1})
	snap.Requirements = append(snap.Requirements,
		TemplateRequirement{ID: "r5", TemplateID: "t2", DocumentName: "Second", IsRequired: true, DisplayOrder: 2},
		TemplateRequirement{ID: "r4", TemplateID: "t2", DocumentName: "First", IsRequired: true, DisplayOrder: 1},
	)
	snap.Assignments = append(snap.Assignments, TemplateAssignment{ID: "a2", TemplateID: "t2", Role: "manager"})

	matrix := BuildMatrix(snap, matrixNow, 30)
	if len(matrix.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(matrix.Groups))
	}
	if matrix.Groups[0].TemplateName != "Alpha Pack" || matrix.Groups[1].TemplateName != "Management Pack" {
		t.Fatalf("groups not ordered by template name: %s, %s", matrix.Groups[0].TemplateName, matrix.Groups[1].TemplateName)
	}
	alpha := matrix.Groups[0].Requirements
	if alpha[0].ID != "r4" || alpha[1].ID != "r5" {
		t.Fatalf("requirements not ordered by display order: %s, %s", alpha[0].ID, alpha[1].ID)
	}
}

func TestBuildMatrixEmployeesOrderedByName(t *testing.T) {
	snap := matrixSnapshot()
	snap.Employees = []Employee{snap.Employees[2], snap.Employees[0], snap.Employees[1]}

	matrix := BuildMatrix(snap, matrixNow, 30)
	if matrix.Employees[0].ID != "e1" || matrix.Employees[1].ID != "e2" || matrix.Employees[2].ID != "e3" {
		t.Fatalf("employees not ordered by name: %+v", matrix.Employees)
	}
}

func TestBuildMatrixWarningsDoNotAbort(t *testing.T) {
	snap := matrixSnapshot()
	snap.Requirements = append(snap.Requirements, TemplateRequirement{
		ID: "r3", TemplateID: "t1", DocumentName: "Broken", IsRequired: true, RequiresExpiry: true, DisplayOrder: 3,
	})
	snap.Assignments = append(snap.Assignments,
		TemplateAssignment{ID: "a2", TemplateID: "t-gone", Role: "manager"},
		TemplateAssignment{ID: "a3", TemplateID: "t1"},
	)

	matrix := BuildMatrix(snap, matrixNow, 30)
	if len(matrix.Warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %+v", matrix.Warnings)
	}
	codes := map[string]bool{}
	for _, warning := range matrix.Warnings {
		codes[warning.Code] = true
	}
	for _, code := range []string{WarningInvalidAssignmentTarget, WarningOrphanAssignment, WarningMissingValidityDays} {
		if !codes[code] {
			t.Fatalf("missing warning code %s in %+v", code, matrix.Warnings)
		}
	}
	// The broken requirement still yields entries for both managers.
	if matrix.Entries["e1"]["r3"].Status != StatusMissing {
		t.Fatalf("expected broken requirement evaluated as missing, got %+v", matrix.Entries["e1"]["r3"])
	}
}

func TestBuildMatrixCurrentRecordSelection(t *testing.T) {
	snap := matrixSnapshot()
	snap.Records = append(snap.Records, EmployeeDocumentRecord{
		ID: "rec2", EmployeeID: "e1", RequirementID: "r1", FileRef: "orgs/o1/e1/contract-v2.pdf",
		UploadedAt: matrixNow.Add(-time.Hour), IsVerified: false,
	})

	matrix := BuildMatrix(snap, matrixNow, 30)
	entry := matrix.Entries["e1"]["r1"]
	if entry.Status != StatusPendingVerification {
		t.Fatalf("expected re-upload to win, got %s", entry.Status)
	}
	if entry.FileRef != "orgs/o1/e1/contract-v2.pdf" {
		t.Fatalf("expected newest file ref, got %s", entry.FileRef)
	}
}

func TestBuildChecklist(t *testing.T) {
	entries, err := BuildChecklist(matrixSnapshot(), "e2", matrixNow, 30)
	if err != nil {
		t.Fatalf("checklist error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RequirementID != "r1" || entries[1].RequirementID != "r2" {
		t.Fatalf("unexpected checklist order: %+v", entries)
	}
	if entries[0].Status != StatusMissing {
		t.Fatalf("expected missing contract, got %s", entries[0].Status)
	}
}

func TestBuildChecklistUnknownEmployee(t *testing.T) {
	if _, err := BuildChecklist(matrixSnapshot(), "e99", matrixNow, 30); err != ErrUnknownEmployee {
		t.Fatalf("expected ErrUnknownEmployee, got %v", err)
	}
}
