package compliance

import "context"

// SourceAPI is the read contract the engine consumes: the employee
// directory, the requirement catalog and the record store. Implementations
// must return consistent reads; the engine treats the combined result as an
// immutable snapshot and never writes through this interface.
type SourceAPI interface {
	OrgExists(ctx context.Context, orgID string) (bool, error)
	ListEmployees(ctx context.Context, orgID string) ([]Employee, error)
	ListActiveTemplates(ctx context.Context, orgID string) ([]DocumentTemplate, []TemplateRequirement, error)
	ListAssignments(ctx context.Context, orgID string) ([]TemplateAssignment, error)
	ListRecords(ctx context.Context, orgID string, employeeIDs []string) ([]EmployeeDocumentRecord, error)
}
