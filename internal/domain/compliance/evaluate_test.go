package compliance

import (
	"testing"
	"time"
)

var evalNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func expiringRequirement() TemplateRequirement {
	return TemplateRequirement{
		ID:                  "r1",
		TemplateID:          "t1",
		DocumentName:        "Driving License",
		IsRequired:          true,
		RequiresExpiry:      true,
		DefaultValidityDays: intPtr(365),
	}
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestCurrentRecordPicksLatestUpload(t *testing.T) {
	records := []EmployeeDocumentRecord{
		{ID: "rec1", UploadedAt: evalNow.Add(-48 * time.Hour)},
		{ID: "rec2", UploadedAt: evalNow.Add(-1 * time.Hour)},
		{ID: "rec3", UploadedAt: evalNow.Add(-24 * time.Hour)},
	}
	current := CurrentRecord(records)
	if current == nil || current.ID != "rec2" {
		t.Fatalf("expected rec2, got %+v", current)
	}
}

func TestCurrentRecordBreaksTiesByGreaterID(t *testing.T) {
	uploaded := evalNow.Add(-time.Hour)
	records := []EmployeeDocumentRecord{
		{ID: "rec1", UploadedAt: uploaded},
		{ID: "rec2", UploadedAt: uploaded},
	}
	if current := CurrentRecord(records); current.ID != "rec2" {
		t.Fatalf("expected tie broken by greater id, got %s", current.ID)
	}
}

func TestCurrentRecordEmpty(t *testing.T) {
	if CurrentRecord(nil) != nil {
		t.Fatal("expected nil for no records")
	}
}

func TestEvaluateMissingWinsRegardlessOfRequirement(t *testing.T) {
	if status := EvaluateStatus(expiringRequirement(), nil, evalNow, 30); status != StatusMissing {
		t.Fatalf("expected missing, got %s", status)
	}
	optional := TemplateRequirement{ID: "r2", RequiresExpiry: false}
	if status := EvaluateStatus(optional, nil, evalNow, 30); status != StatusMissing {
		t.Fatalf("expected missing, got %s", status)
	}
}

func TestEvaluateExpiredDominatesVerification(t *testing.T) {
	record := &EmployeeDocumentRecord{
		ID:         "rec1",
		UploadedAt: evalNow.Add(-time.Hour),
		ExpiryDate: timePtr(evalNow.AddDate(0, 0, -1)),
		IsVerified: true,
		VerifiedAt: timePtr(evalNow.Add(-time.Hour)),
	}
	if status := EvaluateStatus(expiringRequirement(), record, evalNow, 30); status != StatusExpired {
		t.Fatalf("expected expired, got %s", status)
	}
}

func TestEvaluateExpiringSoonWithinWindow(t *testing.T) {
	record := &EmployeeDocumentRecord{
		ID:         "rec1",
		UploadedAt: evalNow.Add(-time.Hour),
		ExpiryDate: timePtr(evalNow.AddDate(0, 0, 10)),
		IsVerified: true,
	}
	if status := EvaluateStatus(expiringRequirement(), record, evalNow, 30); status != StatusExpiringSoon {
		t.Fatalf("expected expiring_soon, got %s", status)
	}
}

func TestEvaluateOutsideWindowFallsThrough(t *testing.T) {
	record := &EmployeeDocumentRecord{
		ID:         "rec1",
		UploadedAt: evalNow.Add(-time.Hour),
		ExpiryDate: timePtr(evalNow.AddDate(0, 0, 90)),
		IsVerified: true,
	}
	if status := EvaluateStatus(expiringRequirement(), record, evalNow, 30); status != StatusCompliant {
		t.Fatalf("expected compliant, got %s", status)
	}
}

func TestEvaluatePendingVerificationWithoutExpiry(t *testing.T) {
	requirement := TemplateRequirement{ID: "r2", DocumentName: "Tax Form", RequiresExpiry: false}
	record := &EmployeeDocumentRecord{ID: "rec1", UploadedAt: evalNow.Add(-time.Hour), IsVerified: false}
	if status := EvaluateStatus(requirement, record, evalNow, 30); status != StatusPendingVerification {
		t.Fatalf("expected pending_verification, got %s", status)
	}
}

func TestEvaluateUnverifiedExpiringSoonStillExpiringSoon(t *testing.T) {
	record := &EmployeeDocumentRecord{
		ID:         "rec1",
		UploadedAt: evalNow.Add(-time.Hour),
		ExpiryDate: timePtr(evalNow.AddDate(0, 0, 5)),
		IsVerified: false,
	}
	if status := EvaluateStatus(expiringRequirement(), record, evalNow, 30); status != StatusExpiringSoon {
		t.Fatalf("expected expiring_soon to win over pending, got %s", status)
	}
}

func TestEvaluateViolatedInvariantDegradesToNonExpiring(t *testing.T) {
	requirement := TemplateRequirement{
		ID:             "r1",
		DocumentName:   "Broken Requirement",
		RequiresExpiry: true,
		// no validity period: upstream invariant violation
	}
	record := &EmployeeDocumentRecord{
		ID:         "rec1",
		UploadedAt: evalNow.Add(-time.Hour),
		ExpiryDate: timePtr(evalNow.AddDate(0, 0, -1)),
		IsVerified: true,
	}
	if status := EvaluateStatus(requirement, record, evalNow, 30); status != StatusCompliant {
		t.Fatalf("expected degraded requirement to ignore expiry, got %s", status)
	}
}

func TestEvaluateCompliant(t *testing.T) {
	requirement := TemplateRequirement{ID: "r2", DocumentName: "Contract"}
	record := &EmployeeDocumentRecord{
		ID:         "rec1",
		UploadedAt: evalNow.Add(-time.Hour),
		IsVerified: true,
		VerifiedAt: timePtr(evalNow.Add(-30 * time.Minute)),
	}
	if status := EvaluateStatus(requirement, record, evalNow, 30); status != StatusCompliant {
		t.Fatalf("expected compliant, got %s", status)
	}
}
