package compliance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ExportSummaryPDF renders the organization's compliance summary to an A4
// PDF under reportDir and returns the file path. When an encryption key is
// configured the file is stored encrypted with an .enc suffix.
func (s *Service) ExportSummaryPDF(ctx context.Context, orgID string, asOf time.Time, reportDir string) (string, error) {
	matrix, err := s.ComplianceMatrix(ctx, orgID, asOf, nil)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(reportDir, fmt.Sprintf("compliance-%s-%s.pdf", orgID, asOf.UTC().Format("2006-01-02")))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Document Compliance Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("As of: %s", asOf.UTC().Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employees tracked: %d", len(matrix.Employees)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Compliance rate: %.1f%%", matrix.Stats.ComplianceRate))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Required documents by status")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []struct {
		label string
		count int
	}{
		{"Compliant", matrix.Stats.Compliant},
		{"Missing", matrix.Stats.Missing},
		{"Expired", matrix.Stats.Expired},
		{"Expiring soon", matrix.Stats.ExpiringSoon},
		{"Pending verification", matrix.Stats.PendingVerification},
	} {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d", line.label, line.count))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Attention needed")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, employee := range matrix.Employees {
		for _, group := range matrix.Groups {
			for _, requirement := range group.Requirements {
				entry, ok := matrix.Entries[employee.ID][requirement.ID]
				if !ok || !entry.IsRequired || entry.Status == StatusCompliant {
					continue
				}
				pdf.Cell(0, 6, fmt.Sprintf("%s - %s: %s", employee.Name, entry.DocumentName, entry.Status))
				pdf.Ln(5)
			}
		}
	}

	if len(matrix.Warnings) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Data issues: %d", len(matrix.Warnings)))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, warning := range matrix.Warnings {
			pdf.Cell(0, 6, fmt.Sprintf("[%s] %s", warning.Code, warning.Message))
			pdf.Ln(5)
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	if s.crypto != nil && s.crypto.Configured() {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		encrypted, err := s.crypto.Encrypt(data)
		if err != nil {
			return "", err
		}
		encryptedPath := filePath + ".enc"
		if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
			return "", err
		}
		if err := os.Remove(filePath); err != nil {
			return "", err
		}
		return encryptedPath, nil
	}

	return filePath, nil
}
