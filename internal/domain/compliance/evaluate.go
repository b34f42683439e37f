package compliance

import "time"

// CurrentRecord selects the record that represents the live state of one
// (employee, requirement) pair: the greatest uploadedAt, ties broken by the
// greatest id. Older records stay visible for audit only. Returns nil when
// no record exists.
func CurrentRecord(records []EmployeeDocumentRecord) *EmployeeDocumentRecord {
	var current *EmployeeDocumentRecord
	for i := range records {
		record := &records[i]
		if current == nil {
			current = record
			continue
		}
		if record.UploadedAt.After(current.UploadedAt) {
			current = record
			continue
		}
		if record.UploadedAt.Equal(current.UploadedAt) && record.ID > current.ID {
			current = record
		}
	}
	return current
}

// effectiveRequiresExpiry degrades a requirement whose expiry invariant was
// violated upstream (requiresExpiry without a positive validity period) to a
// non-expiring one, so the matrix can still be produced. The violation is
// surfaced separately as a data-integrity warning.
func effectiveRequiresExpiry(req TemplateRequirement) bool {
	return req.RequiresExpiry && req.DefaultValidityDays != nil && *req.DefaultValidityDays > 0
}

// EvaluateStatus maps one requirement and its current record to a status.
// The precedence ladder is fixed: missing, expired, expiring_soon,
// pending_verification, compliant — first match wins. Expiry problems
// dominate verification state, so a verified but expired document still
// reads as expired. isRequired never participates here; it only gates the
// aggregate statistics.
func EvaluateStatus(req TemplateRequirement, record *EmployeeDocumentRecord, now time.Time, windowDays int) string {
	if record == nil {
		return StatusMissing
	}
	if effectiveRequiresExpiry(req) && record.ExpiryDate != nil {
		if record.ExpiryDate.Before(now) {
			return StatusExpired
		}
		if !record.ExpiryDate.After(now.AddDate(0, 0, windowDays)) {
			return StatusExpiringSoon
		}
	}
	if !record.IsVerified {
		return StatusPendingVerification
	}
	return StatusCompliant
}

func buildEntry(req TemplateRequirement, templateName, employeeID string, record *EmployeeDocumentRecord, now time.Time, windowDays int) ComplianceEntry {
	entry := ComplianceEntry{
		EmployeeID:    employeeID,
		RequirementID: req.ID,
		TemplateName:  templateName,
		DocumentName:  req.DocumentName,
		DocumentType:  req.DocumentType,
		IsRequired:    req.IsRequired,
		Status:        EvaluateStatus(req, record, now, windowDays),
	}
	if record != nil {
		uploadedAt := record.UploadedAt
		entry.UploadedAt = &uploadedAt
		entry.ExpiryDate = record.ExpiryDate
		entry.IsVerified = record.IsVerified
		entry.VerifiedAt = record.VerifiedAt
		entry.FileRef = record.FileRef
		entry.FileName = record.FileName
		entry.UploaderName = record.UploaderName
		entry.Notes = record.Notes
	}
	return entry
}
