package compliance

import "sort"

// NewAssignment validates the exactly-one-of target invariant at the
// boundary, so malformed rows are rejected before they reach evaluation.
func NewAssignment(id, templateID, employeeID, role, teamID string) (TemplateAssignment, error) {
	a := TemplateAssignment{
		ID:         id,
		TemplateID: templateID,
		EmployeeID: employeeID,
		Role:       role,
		TeamID:     teamID,
	}
	if a.TargetKind() == "" {
		return TemplateAssignment{}, ErrAssignmentTarget
	}
	return a, nil
}

// TargetKind returns which dimension the assignment targets, or an empty
// string when zero or multiple targets are set.
func (a TemplateAssignment) TargetKind() string {
	set := 0
	kind := ""
	if a.EmployeeID != "" {
		set++
		kind = TargetEmployee
	}
	if a.Role != "" {
		set++
		kind = TargetRole
	}
	if a.TeamID != "" {
		set++
		kind = TargetTeam
	}
	if set != 1 {
		return ""
	}
	return kind
}

// Matches reports whether the assignment applies to the employee.
func (a TemplateAssignment) Matches(e Employee) bool {
	switch a.TargetKind() {
	case TargetEmployee:
		return a.EmployeeID == e.ID
	case TargetRole:
		return a.Role == e.Role
	case TargetTeam:
		for _, teamID := range e.TeamIDs {
			if teamID == a.TeamID {
				return true
			}
		}
	}
	return false
}

// ResolveRequirements computes the effective requirement set for one
// employee: the requirements of every active template reachable through at
// least one assignment, deduplicated by requirement id. Assignments with
// invalid targets or referencing unknown templates never match; an employee
// with no applicable assignments resolves to an empty set.
//
// Output ordering is deterministic: templates by name, then requirements by
// display order, then by id.
func ResolveRequirements(e Employee, snap Snapshot) []TemplateRequirement {
	active := make(map[string]DocumentTemplate, len(snap.Templates))
	for _, template := range snap.Templates {
		if template.IsActive {
			active[template.ID] = template
		}
	}

	applies := make(map[string]bool)
	for _, assignment := range snap.Assignments {
		if _, ok := active[assignment.TemplateID]; !ok {
			continue
		}
		if assignment.Matches(e) {
			applies[assignment.TemplateID] = true
		}
	}
	if len(applies) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var requirements []TemplateRequirement
	for _, requirement := range snap.Requirements {
		if !applies[requirement.TemplateID] || seen[requirement.ID] {
			continue
		}
		seen[requirement.ID] = true
		requirements = append(requirements, requirement)
	}

	sortRequirements(requirements, active)
	return requirements
}

func sortRequirements(requirements []TemplateRequirement, templates map[string]DocumentTemplate) {
	sort.SliceStable(requirements, func(i, j int) bool {
		a, b := requirements[i], requirements[j]
		nameA := templates[a.TemplateID].Name
		nameB := templates[b.TemplateID].Name
		if nameA != nameB {
			return nameA < nameB
		}
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.ID < b.ID
	})
}
