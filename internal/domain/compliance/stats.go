package compliance

// computeStats aggregates per-status counts over required entries and the
// overall compliance rate. Optional documents are tracked with the same
// status vocabulary but stay out of the rate and the per-status counts;
// they only contribute to totalTracked.
func computeStats(entries []ComplianceEntry) Stats {
	var stats Stats
	for _, entry := range entries {
		stats.TotalTracked++
		if !entry.IsRequired {
			continue
		}
		stats.TotalRequired++
		switch entry.Status {
		case StatusCompliant:
			stats.Compliant++
		case StatusMissing:
			stats.Missing++
		case StatusExpired:
			stats.Expired++
		case StatusExpiringSoon:
			stats.ExpiringSoon++
		case StatusPendingVerification:
			stats.PendingVerification++
		}
	}
	stats.ComplianceRate = complianceRate(stats.Compliant, stats.TotalRequired)
	return stats
}

// complianceRate returns 100*compliant/totalRequired, or 0 when nothing is
// required. Never NaN.
func complianceRate(compliant, totalRequired int) float64 {
	if totalRequired == 0 {
		return 0
	}
	return 100 * float64(compliant) / float64(totalRequired)
}

// EmployeeComplianceRate is the single-row variant used for per-employee
// progress indicators.
func EmployeeComplianceRate(entries []ComplianceEntry) float64 {
	compliant, required := 0, 0
	for _, entry := range entries {
		if !entry.IsRequired {
			continue
		}
		required++
		if entry.Status == StatusCompliant {
			compliant++
		}
	}
	return complianceRate(compliant, required)
}
