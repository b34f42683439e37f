package compliance

import (
	"context"
	"fmt"
	"time"

	cryptoutil "opsboard/internal/platform/crypto"
	"opsboard/internal/platform/metrics"
)

// Service is the engine's entry point: it validates inputs, pulls one
// snapshot from the collaborator sources, runs the pure matrix computation
// and memoizes full-organization results.
type Service struct {
	source     SourceAPI
	crypto     *cryptoutil.Service
	cache      *matrixCache
	windowDays int

	// Metrics is optional; when set the service counts computations and
	// cache hits.
	Metrics *metrics.Collector
}

func NewService(source SourceAPI, crypto *cryptoutil.Service, windowDays int, cacheTTL time.Duration) (*Service, error) {
	if windowDays < 0 {
		return nil, ErrNegativeWindow
	}
	return &Service{
		source:     source,
		crypto:     crypto,
		cache:      newMatrixCache(cacheTTL),
		windowDays: windowDays,
	}, nil
}

// ComplianceMatrix computes the matrix for the organization as of the given
// time. When employeeFilter is non-empty only those employees are included;
// a filter matching no known employee is a caller error. Filtered requests
// bypass the cache.
func (s *Service) ComplianceMatrix(ctx context.Context, orgID string, asOf time.Time, employeeFilter []string) (ComplianceMatrix, error) {
	if err := s.checkOrg(ctx, orgID); err != nil {
		return ComplianceMatrix{}, err
	}

	if len(employeeFilter) == 0 {
		if matrix, ok := s.cache.get(orgID, asOf); ok {
			s.Metrics.MarkCacheHit()
			return matrix, nil
		}
	}

	snap, err := s.loadSnapshot(ctx, orgID, employeeFilter)
	if err != nil {
		return ComplianceMatrix{}, err
	}

	if len(employeeFilter) > 0 {
		snap.Employees = filterEmployees(snap.Employees, employeeFilter)
		if len(snap.Employees) == 0 {
			return ComplianceMatrix{}, ErrNoMatchingEmployees
		}
	}

	matrix := BuildMatrix(snap, asOf, s.windowDays)
	s.Metrics.MarkMatrixComputed()

	if len(employeeFilter) == 0 {
		s.cache.put(orgID, asOf, matrix)
	}
	return matrix, nil
}

// EmployeeChecklist returns the ordered compliance entries for one
// employee, with any data-integrity warnings for the snapshot. The caller
// splits required from optional for presentation.
func (s *Service) EmployeeChecklist(ctx context.Context, orgID, employeeID string, asOf time.Time) ([]ComplianceEntry, []Warning, error) {
	if err := s.checkOrg(ctx, orgID); err != nil {
		return nil, nil, err
	}

	snap, err := s.loadSnapshot(ctx, orgID, []string{employeeID})
	if err != nil {
		return nil, nil, err
	}

	entries, err := BuildChecklist(snap, employeeID, asOf, s.windowDays)
	if err != nil {
		return nil, nil, err
	}
	return entries, snapshotWarnings(snap), nil
}

// Invalidate drops cached matrices for the organization. Upload, catalog
// and roster write paths must call this on every change.
func (s *Service) Invalidate(orgID string) {
	s.cache.invalidate(orgID)
}

func (s *Service) checkOrg(ctx context.Context, orgID string) error {
	exists, err := s.source.OrgExists(ctx, orgID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if !exists {
		return ErrUnknownOrg
	}
	return nil
}

func (s *Service) loadSnapshot(ctx context.Context, orgID string, employeeIDs []string) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Employees, err = s.source.ListEmployees(ctx, orgID); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if snap.Templates, snap.Requirements, err = s.source.ListActiveTemplates(ctx, orgID); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if snap.Assignments, err = s.source.ListAssignments(ctx, orgID); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if snap.Records, err = s.source.ListRecords(ctx, orgID, employeeIDs); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return snap, nil
}

func filterEmployees(employees []Employee, filter []string) []Employee {
	keep := make(map[string]bool, len(filter))
	for _, id := range filter {
		keep[id] = true
	}
	var filtered []Employee
	for _, employee := range employees {
		if keep[employee.ID] {
			filtered = append(filtered, employee)
		}
	}
	return filtered
}
