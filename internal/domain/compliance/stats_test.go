package compliance

import "testing"

func TestComputeStatsCountsRequiredOnly(t *testing.T) {
	entries := []ComplianceEntry{
		{IsRequired: true, Status: StatusCompliant},
		{IsRequired: true, Status: StatusMissing},
		{IsRequired: true, Status: StatusExpired},
		{IsRequired: true, Status: StatusExpiringSoon},
		{IsRequired: true, Status: StatusPendingVerification},
		{IsRequired: false, Status: StatusMissing},
	}

	stats := computeStats(entries)
	if stats.TotalRequired != 5 || stats.TotalTracked != 6 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.Compliant != 1 || stats.Missing != 1 || stats.Expired != 1 || stats.ExpiringSoon != 1 || stats.PendingVerification != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.ComplianceRate != 20 {
		t.Fatalf("expected rate 20, got %v", stats.ComplianceRate)
	}
}

func TestComplianceRateZeroWhenNothingRequired(t *testing.T) {
	stats := computeStats([]ComplianceEntry{{IsRequired: false, Status: StatusCompliant}})
	if stats.ComplianceRate != 0 {
		t.Fatalf("expected 0 rate, got %v", stats.ComplianceRate)
	}
	if stats.ComplianceRate != stats.ComplianceRate {
		t.Fatal("rate is NaN")
	}
}

func TestComplianceRateBounds(t *testing.T) {
	all := computeStats([]ComplianceEntry{
		{IsRequired: true, Status: StatusCompliant},
		{IsRequired: true, Status: StatusCompliant},
	})
	if all.ComplianceRate != 100 {
		t.Fatalf("expected 100, got %v", all.ComplianceRate)
	}
	none := computeStats([]ComplianceEntry{
		{IsRequired: true, Status: StatusMissing},
	})
	if none.ComplianceRate != 0 {
		t.Fatalf("expected 0, got %v", none.ComplianceRate)
	}
}

func TestEmployeeComplianceRate(t *testing.T) {
	entries := []ComplianceEntry{
		{IsRequired: true, Status: StatusCompliant},
		{IsRequired: true, Status: StatusMissing},
		{IsRequired: false, Status: StatusMissing},
	}
	if rate := EmployeeComplianceRate(entries); rate != 50 {
		t.Fatalf("expected 50, got %v", rate)
	}
	if rate := EmployeeComplianceRate(nil); rate != 0 {
		t.Fatalf("expected 0 for no entries, got %v", rate)
	}
}
