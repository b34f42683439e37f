package compliance

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// BuildMatrix evaluates the full employee x requirement grid for one
// snapshot. The computation is pure: the same snapshot and the same now
// always produce the same matrix. Employees are evaluated in parallel, each
// goroutine writing only its own pre-sized slot, and merged afterwards.
func BuildMatrix(snap Snapshot, now time.Time, windowDays int) ComplianceMatrix {
	employees := make([]Employee, len(snap.Employees))
	copy(employees, snap.Employees)
	sort.SliceStable(employees, func(i, j int) bool {
		if employees[i].Name != employees[j].Name {
			return employees[i].Name < employees[j].Name
		}
		return employees[i].ID < employees[j].ID
	})

	templateNames := templateNameIndex(snap.Templates)
	recordIndex := indexRecords(snap.Records)

	rows := make([][]ComplianceEntry, len(employees))
	var wg sync.WaitGroup
	for i := range employees {
		wg.Add(1)
		go func(slot int, employee Employee) {
			defer wg.Done()
			rows[slot] = evaluateEmployee(employee, snap, templateNames, recordIndex, now, windowDays)
		}(i, employees[i])
	}
	wg.Wait()

	matrix := ComplianceMatrix{
		AsOf:      now,
		Employees: employees,
		Entries:   make(map[string]map[string]ComplianceEntry, len(employees)),
		Rates:     make(map[string]float64, len(employees)),
		Warnings:  snapshotWarnings(snap),
	}

	var all []ComplianceEntry
	resolved := make(map[string]bool)
	for i, employee := range employees {
		entries := rows[i]
		byRequirement := make(map[string]ComplianceEntry, len(entries))
		for _, entry := range entries {
			byRequirement[entry.RequirementID] = entry
			resolved[entry.RequirementID] = true
		}
		matrix.Entries[employee.ID] = byRequirement
		matrix.Rates[employee.ID] = EmployeeComplianceRate(entries)
		all = append(all, entries...)
	}

	matrix.Groups = groupRequirements(snap, resolved, templateNames)
	matrix.Stats = computeStats(all)
	return matrix
}

// BuildChecklist is the single-employee slice of the matrix computation,
// used for the personal "my documents" view.
func BuildChecklist(snap Snapshot, employeeID string, now time.Time, windowDays int) ([]ComplianceEntry, error) {
	for _, employee := range snap.Employees {
		if employee.ID == employeeID {
			templateNames := templateNameIndex(snap.Templates)
			recordIndex := indexRecords(snap.Records)
			return evaluateEmployee(employee, snap, templateNames, recordIndex, now, windowDays), nil
		}
	}
	return nil, ErrUnknownEmployee
}

func evaluateEmployee(employee Employee, snap Snapshot, templateNames map[string]string, recordIndex map[string]map[string][]EmployeeDocumentRecord, now time.Time, windowDays int) []ComplianceEntry {
	requirements := ResolveRequirements(employee, snap)
	if len(requirements) == 0 {
		return nil
	}
	entries := make([]ComplianceEntry, 0, len(requirements))
	for _, requirement := range requirements {
		record := CurrentRecord(recordIndex[employee.ID][requirement.ID])
		entries = append(entries, buildEntry(requirement, templateNames[requirement.TemplateID], employee.ID, record, now, windowDays))
	}
	return entries
}

func templateNameIndex(templates []DocumentTemplate) map[string]string {
	names := make(map[string]string, len(templates))
	for _, template := range templates {
		names[template.ID] = template.Name
	}
	return names
}

func indexRecords(records []EmployeeDocumentRecord) map[string]map[string][]EmployeeDocumentRecord {
	index := make(map[string]map[string][]EmployeeDocumentRecord)
	for _, record := range records {
		byRequirement, ok := index[record.EmployeeID]
		if !ok {
			byRequirement = make(map[string][]EmployeeDocumentRecord)
			index[record.EmployeeID] = byRequirement
		}
		byRequirement[record.RequirementID] = append(byRequirement[record.RequirementID], record)
	}
	return index
}

// groupRequirements lays out the matrix columns: requirements that resolved
// for at least one employee, grouped by owning template name, templates
// ordered by name and requirements by display order within each group.
func groupRequirements(snap Snapshot, resolved map[string]bool, templateNames map[string]string) []TemplateGroup {
	byTemplate := make(map[string][]TemplateRequirement)
	for _, requirement := range snap.Requirements {
		if resolved[requirement.ID] {
			byTemplate[requirement.TemplateID] = append(byTemplate[requirement.TemplateID], requirement)
		}
	}

	groups := make([]TemplateGroup, 0, len(byTemplate))
	for templateID, requirements := range byTemplate {
		sort.SliceStable(requirements, func(i, j int) bool {
			if requirements[i].DisplayOrder != requirements[j].DisplayOrder {
				return requirements[i].DisplayOrder < requirements[j].DisplayOrder
			}
			return requirements[i].ID < requirements[j].ID
		})
		groups = append(groups, TemplateGroup{TemplateName: templateNames[templateID], Requirements: requirements})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TemplateName < groups[j].TemplateName
	})
	return groups
}

// snapshotWarnings collects data-integrity findings that must not abort the
// computation: a partial matrix with a visible issue count beats no result.
func snapshotWarnings(snap Snapshot) []Warning {
	var warnings []Warning

	known := make(map[string]bool, len(snap.Templates))
	for _, template := range snap.Templates {
		known[template.ID] = true
	}

	for _, assignment := range snap.Assignments {
		if assignment.TargetKind() == "" {
			warnings = append(warnings, Warning{
				Code:      WarningInvalidAssignmentTarget,
				SubjectID: assignment.ID,
				Message:   "assignment must target exactly one of employee, role or team",
			})
			continue
		}
		if !known[assignment.TemplateID] {
			warnings = append(warnings, Warning{
				Code:      WarningOrphanAssignment,
				SubjectID: assignment.ID,
				Message:   fmt.Sprintf("assignment references unknown template %s", assignment.TemplateID),
			})
		}
	}

	for _, requirement := range snap.Requirements {
		if requirement.RequiresExpiry && !effectiveRequiresExpiry(requirement) {
			warnings = append(warnings, Warning{
				Code:      WarningMissingValidityDays,
				SubjectID: requirement.ID,
				Message:   fmt.Sprintf("requirement %q requires expiry but has no validity period; treated as non-expiring", requirement.DocumentName),
			})
		}
	}

	return warnings
}
