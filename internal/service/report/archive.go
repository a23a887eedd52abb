package report

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
)

// sentSlip is a PDF that was mailed and is due for archival.
type sentSlip struct {
	EmployeeID string
	Path       string
	Data       []byte
}

// ArchiveResult separates slips that reached the archive from those that did not.
type ArchiveResult struct {
	Archived []sentSlip
	Failed   []report.ArchiveFailure
}

// archiveSlips copies each slip into the archive and repoints its record.
// A failure for one slip is recorded and the rest carry on.
func (s *DeliveryServiceImpl) archiveSlips(ctx context.Context, managerID string, p period.Period, slips []sentSlip) ArchiveResult {
	var result ArchiveResult

	for _, slip := range slips {
		dst := archivePDFPath(s.cfg.BaseDir, slip.EmployeeID, p)

		if err := s.archiveOne(ctx, slip.Path, dst); err != nil {
			slog.WarnContext(ctx, "Failed to archive salary slip",
				"manager_id", managerID,
				"employee_id", slip.EmployeeID,
				"path", dst,
				"error", err,
			)
			result.Failed = append(result.Failed, report.ArchiveFailure{
				EmployeeID: slip.EmployeeID,
				Path:       dst,
				Error:      err.Error(),
			})
			continue
		}
		result.Archived = append(result.Archived, slip)
	}

	return result
}

func (s *DeliveryServiceImpl) archiveOne(ctx context.Context, src, dst string) error {
	if err := s.storage.Copy(ctx, src, dst); err != nil {
		return err
	}

	rec, err := s.reportRepo.GetByPath(ctx, src)
	if err != nil {
		return err
	}
	if rec == nil {
		// The bytes are archived even without a record to repoint.
		return nil
	}
	_, err = s.reportRepo.MarkArchived(ctx, rec.ID, dst)
	return err
}
