package compliance

import "errors"

var (
	ErrSourceUnavailable   = errors.New("compliance data source unavailable")
	ErrUnknownOrg          = errors.New("organization not found")
	ErrUnknownEmployee     = errors.New("employee not found")
	ErrNoMatchingEmployees = errors.New("employee filter matches no employees")
	ErrNegativeWindow      = errors.New("expiring-soon window must not be negative")
	ErrAssignmentTarget    = errors.New("assignment must target exactly one of employee, role or team")
)
