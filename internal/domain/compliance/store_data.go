package compliance

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads the directory, catalog and record tables from Postgres. All
// queries are read-only; upload and CRUD surfaces own the writes.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) OrgExists(ctx context.Context, orgID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM organizations WHERE id = $1", orgID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListEmployees(ctx context.Context, orgID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, email, COALESCE(role, '')
    FROM employees
    WHERE org_id = $1
    ORDER BY name, id
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	byID := make(map[string]int)
	for rows.Next() {
		var employee Employee
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Email, &employee.Role); err != nil {
			return nil, err
		}
		byID[employee.ID] = len(employees)
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	teamRows, err := s.DB.Query(ctx, `
    SELECT t.employee_id, t.team_id
    FROM employee_teams t
    JOIN employees e ON e.id = t.employee_id
    WHERE e.org_id = $1
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer teamRows.Close()

	for teamRows.Next() {
		var employeeID, teamID string
		if err := teamRows.Scan(&employeeID, &teamID); err != nil {
			return nil, err
		}
		if i, ok := byID[employeeID]; ok {
			employees[i].TeamIDs = append(employees[i].TeamIDs, teamID)
		}
	}
	return employees, teamRows.Err()
}

func (s *Store) ListActiveTemplates(ctx context.Context, orgID string) ([]DocumentTemplate, []TemplateRequirement, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(description, ''), is_active, version
    FROM document_templates
    WHERE org_id = $1 AND is_active = true
    ORDER BY name, id
  `, orgID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var templates []DocumentTemplate
	for rows.Next() {
		var template DocumentTemplate
		if err := rows.Scan(&template.ID, &template.Name, &template.Description, &template.IsActive, &template.Version); err != nil {
			return nil, nil, err
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	reqRows, err := s.DB.Query(ctx, `
    SELECT r.id, r.template_id, r.document_name, r.document_type,
           r.is_required, r.requires_expiry, r.default_validity_days,
           COALESCE(r.max_file_size_mb, 0), r.display_order
    FROM template_requirements r
    JOIN document_templates t ON t.id = r.template_id
    WHERE t.org_id = $1 AND t.is_active = true
    ORDER BY r.template_id, r.display_order, r.id
  `, orgID)
	if err != nil {
		return nil, nil, err
	}
	defer reqRows.Close()

	var requirements []TemplateRequirement
	for reqRows.Next() {
		var requirement TemplateRequirement
		if err := reqRows.Scan(&requirement.ID, &requirement.TemplateID, &requirement.DocumentName,
			&requirement.DocumentType, &requirement.IsRequired, &requirement.RequiresExpiry,
			&requirement.DefaultValidityDays, &requirement.MaxFileSizeMB, &requirement.DisplayOrder); err != nil {
			return nil, nil, err
		}
		requirements = append(requirements, requirement)
	}
	return templates, requirements, reqRows.Err()
}

func (s *Store) ListAssignments(ctx context.Context, orgID string) ([]TemplateAssignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.template_id,
           COALESCE(a.employee_id::text, ''), COALESCE(a.role, ''), COALESCE(a.team_id::text, '')
    FROM template_assignments a
    JOIN document_templates t ON t.id = a.template_id
    WHERE t.org_id = $1
    ORDER BY a.id
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []TemplateAssignment
	for rows.Next() {
		var assignment TemplateAssignment
		if err := rows.Scan(&assignment.ID, &assignment.TemplateID, &assignment.EmployeeID, &assignment.Role, &assignment.TeamID); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

func (s *Store) ListRecords(ctx context.Context, orgID string, employeeIDs []string) ([]EmployeeDocumentRecord, error) {
	query := `
    SELECT id, employee_id, requirement_id, file_path,
           COALESCE(file_name, ''), COALESCE(file_type, ''), COALESCE(file_size, 0),
           COALESCE(uploader_id::text, ''), COALESCE(uploader_name, ''), COALESCE(notes, ''),
           uploaded_at, expiry_date, is_verified, COALESCE(verified_by::text, ''), verified_at
    FROM employee_records
    WHERE org_id = $1
  `
	args := []any{orgID}
	if len(employeeIDs) > 0 {
		query += " AND employee_id = ANY($2)"
		args = append(args, employeeIDs)
	}
	query += " ORDER BY uploaded_at, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []EmployeeDocumentRecord
	for rows.Next() {
		var record EmployeeDocumentRecord
		if err := rows.Scan(&record.ID, &record.EmployeeID, &record.RequirementID, &record.FileRef,
			&record.FileName, &record.FileType, &record.FileSizeBytes,
			&record.UploaderID, &record.UploaderName, &record.Notes,
			&record.UploadedAt, &record.ExpiryDate, &record.IsVerified, &record.VerifiedBy, &record.VerifiedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
