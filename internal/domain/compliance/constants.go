package compliance

const (
	StatusMissing             = "missing"
	StatusExpired             = "expired"
	StatusExpiringSoon        = "expiring_soon"
	StatusPendingVerification = "pending_verification"
	StatusCompliant           = "compliant"

	DocumentTypeContract      = "contract"
	DocumentTypeCertification = "certification"
	DocumentTypeTaxForm       = "tax_form"
	DocumentTypeIdentity      = "identity"
	DocumentTypeOther         = "other"

	TargetEmployee = "employee"
	TargetRole     = "role"
	TargetTeam     = "team"

	WarningInvalidAssignmentTarget = "invalid_assignment_target"
	WarningOrphanAssignment        = "orphan_assignment"
	WarningMissingValidityDays     = "missing_validity_days"

	DefaultExpiringSoonWindowDays = 30
)
