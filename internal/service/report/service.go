package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/idempotency"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/render"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
)

type DeliveryServiceImpl struct {
	cfg          config.ReportsConfig
	employeeRepo employee.EmployeeRepository
	monthRepo    period.MonthRepository
	reportRepo   report.ReportFileRepository
	aggregation  payroll.AggregationService
	coordinator  idempotency.Coordinator
	storage      storage.FileStorage
	mailer       email.Mailer
}

func NewDeliveryService(
	cfg config.ReportsConfig,
	employeeRepo employee.EmployeeRepository,
	monthRepo period.MonthRepository,
	reportRepo report.ReportFileRepository,
	aggregation payroll.AggregationService,
	coordinator idempotency.Coordinator,
	fileStorage storage.FileStorage,
	mailer email.Mailer,
) report.DeliveryService {
	return &DeliveryServiceImpl{
		cfg:          cfg,
		employeeRepo: employeeRepo,
		monthRepo:    monthRepo,
		reportRepo:   reportRepo,
		aggregation:  aggregation,
		coordinator:  coordinator,
		storage:      fileStorage,
		mailer:       mailer,
	}
}

// ========== MANAGER CSV ==========

func (s *DeliveryServiceImpl) GenerateManagerCSV(ctx context.Context, req report.GenerateCSVRequest) (report.GenerateCSVResponse, error) {
	if err := req.Validate(); err != nil {
		return report.GenerateCSVResponse{}, err
	}

	p := period.Period{Year: req.Year, Month: req.Month}
	if _, err := s.employeeRepo.GetByID(ctx, req.ManagerID); err != nil {
		return report.GenerateCSVResponse{}, err
	}

	file, err := s.generateCSV(ctx, req.ManagerID, p, req.IncludeBonuses)
	if err != nil {
		return report.GenerateCSVResponse{}, err
	}

	return report.GenerateCSVResponse{
		FileID:   file.ID,
		Path:     file.Path,
		Archived: file.Archived,
	}, nil
}

func (s *DeliveryServiceImpl) SendManagerCSV(ctx context.Context, req report.SendCSVRequest) (report.SendCSVResponse, error) {
	if err := req.Validate(); err != nil {
		return report.SendCSVResponse{}, err
	}

	p := period.Period{Year: req.Year, Month: req.Month}
	idempotent := req.IdempotencyKey != ""

	var resp report.SendCSVResponse
	outcome, err := s.coordinator.Do(ctx, req.IdempotencyKey, sendCSVEndpoint(req.ManagerID, p), func(ctx context.Context) (string, error) {
		manager, err := s.employeeRepo.GetByID(ctx, req.ManagerID)
		if err != nil {
			return "", err
		}

		file, err := s.generateCSV(ctx, req.ManagerID, p, true)
		if err != nil {
			return "", err
		}

		emailSent := s.mailer.Send(ctx, email.Message{
			To:      manager.Email,
			Subject: fmt.Sprintf(s.cfg.CSVSubject, p),
			Body:    s.cfg.CSVBody,
			Attachments: []email.Attachment{
				{Filename: path.Base(file.Path), ContentType: report.ContentTypeFor(report.FileKindCSV), Data: file.Content},
			},
		})
		if !emailSent {
			slog.WarnContext(ctx, "Manager CSV email not delivered", "manager_id", req.ManagerID, "period", p.String())
		}

		archivePath := archiveCSVPath(s.cfg.BaseDir, req.ManagerID, p)
		if err := s.storage.Copy(ctx, file.Path, archivePath); err != nil {
			return "", fmt.Errorf("%w: %w", report.ErrArchiveFailed, err)
		}

		archived, err := s.reportRepo.MarkArchived(ctx, file.ID, archivePath)
		if err != nil {
			return "", err
		}

		slog.InfoContext(ctx, "Manager CSV sent", "manager_id", req.ManagerID, "period", p.String(), "path", archivePath)

		resp = report.SendCSVResponse{
			Status:      report.StatusSent,
			FileID:      archived.ID,
			Archived:    archived.Archived,
			ArchivePath: archived.Path,
			EmailSent:   emailSent,
			Idempotent:  idempotent,
		}
		return archivePath, nil
	})
	if err != nil {
		return report.SendCSVResponse{}, err
	}

	if outcome.Replayed {
		slog.InfoContext(ctx, "Replaying manager CSV send", "manager_id", req.ManagerID, "period", p.String())
		return report.SendCSVResponse{
			Status:      report.StatusCached,
			FileID:      s.fileIDAt(ctx, outcome.ResultPath),
			Archived:    true,
			ArchivePath: outcome.ResultPath,
			Idempotent:  true,
		}, nil
	}
	return resp, nil
}

// generateCSV builds the team CSV, stores it at its working path and upserts the record.
func (s *DeliveryServiceImpl) generateCSV(ctx context.Context, managerID string, p period.Period, includeBonuses bool) (report.ReportFile, error) {
	monthInfo, err := s.monthRepo.GetByYearMonth(ctx, p.Year, p.Month)
	if err != nil {
		return report.ReportFile{}, err
	}

	rows, err := s.aggregation.Summarize(ctx, managerID, p.Year, p.Month)
	if err != nil {
		return report.ReportFile{}, err
	}

	content, err := BuildManagerCSV(rows, monthInfo, includeBonuses)
	if err != nil {
		return report.ReportFile{}, err
	}

	return s.store(ctx, report.PutReportFile{
		Path:    csvPath(s.cfg.BaseDir, managerID, p),
		Kind:    report.FileKindCSV,
		OwnerID: managerID,
		Content: content,
	})
}

// ========== EMPLOYEE PDFS ==========

type employeeSlip struct {
	Employee employee.Employee
	File     report.ReportFile
}

func (s *DeliveryServiceImpl) GenerateEmployeePDFs(ctx context.Context, req report.GeneratePDFsRequest) (report.GeneratePDFsResponse, error) {
	if err := req.Validate(); err != nil {
		return report.GeneratePDFsResponse{}, err
	}

	slips, err := s.generatePDFs(ctx, req.ManagerID, period.Period{Year: req.Year, Month: req.Month}, req.OverwriteExisting)
	if err != nil {
		return report.GeneratePDFsResponse{}, err
	}

	fileIDs := make([]string, 0, len(slips))
	for _, slip := range slips {
		fileIDs = append(fileIDs, slip.File.ID)
	}
	return report.GeneratePDFsResponse{Generated: len(fileIDs), FileIDs: fileIDs}, nil
}

func (s *DeliveryServiceImpl) SendEmployeePDFs(ctx context.Context, req report.SendPDFsRequest) (report.SendPDFsResponse, error) {
	if err := req.Validate(); err != nil {
		return report.SendPDFsResponse{}, err
	}

	p := period.Period{Year: req.Year, Month: req.Month}
	idempotent := req.IdempotencyKey != ""

	var resp report.SendPDFsResponse
	outcome, err := s.coordinator.Do(ctx, req.IdempotencyKey, sendPDFsEndpoint(req.ManagerID, p), func(ctx context.Context) (string, error) {
		slips, err := s.generatePDFs(ctx, req.ManagerID, p, req.RegenerateMissing)
		if err != nil {
			return "", err
		}

		sent, err := s.mailSlips(ctx, p, slips)
		if err != nil {
			return "", err
		}

		archive := s.archiveSlips(ctx, req.ManagerID, p, sent)

		zipFile, err := s.bundleSlips(ctx, req.ManagerID, p, sent)
		if err != nil {
			return "", err
		}

		slog.InfoContext(ctx, "Employee PDFs sent",
			"manager_id", req.ManagerID,
			"period", p.String(),
			"sent", len(sent),
			"archived", len(archive.Archived),
			"archive_failures", len(archive.Failed),
		)

		resp = report.SendPDFsResponse{
			Status:         report.StatusSent,
			Sent:           len(sent),
			ArchivedPDFs:   len(archive.Archived),
			FailedArchives: archive.Failed,
			ArchiveZipID:   zipFile.ID,
			ArchiveZipPath: zipFile.Path,
			Idempotent:     idempotent,
		}
		return zipFile.Path, nil
	})
	if err != nil {
		return report.SendPDFsResponse{}, err
	}

	if outcome.Replayed {
		slog.InfoContext(ctx, "Replaying employee PDFs send", "manager_id", req.ManagerID, "period", p.String())
		return report.SendPDFsResponse{
			Status:         report.StatusCached,
			ArchiveZipID:   s.fileIDAt(ctx, outcome.ResultPath),
			ArchiveZipPath: outcome.ResultPath,
			Idempotent:     true,
		}, nil
	}
	return resp, nil
}

// generatePDFs makes sure every direct report of managerID has a slip at its
// working path. Existing slips are reused unless overwrite is set.
func (s *DeliveryServiceImpl) generatePDFs(ctx context.Context, managerID string, p period.Period, overwrite bool) ([]employeeSlip, error) {
	manager, err := s.employeeRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}

	subordinates, err := s.employeeRepo.ListSubordinates(ctx, managerID)
	if err != nil {
		return nil, err
	}

	monthInfo, err := s.monthRepo.GetByYearMonth(ctx, p.Year, p.Month)
	if err != nil {
		return nil, err
	}

	if len(subordinates) == 0 {
		return nil, nil
	}

	rows, err := s.aggregation.Summarize(ctx, managerID, p.Year, p.Month)
	if err != nil {
		return nil, err
	}
	summaries := make(map[string]payroll.EmployeeMonthSummary, len(rows))
	for _, r := range rows {
		summaries[r.EmployeeID] = r
	}

	slips := make([]employeeSlip, 0, len(subordinates))
	for _, e := range subordinates {
		target := pdfPath(s.cfg.BaseDir, e.ID, p)

		if !overwrite {
			exists, err := s.storage.Exists(ctx, target)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", report.ErrStoreFailed, err)
			}
			if exists {
				// The record may have moved to the archive path, so the
				// reused bytes are stored inline again.
				content, err := storage.ReadAll(ctx, s.storage, target)
				if err != nil {
					return nil, fmt.Errorf("%w: %w", report.ErrStoreFailed, err)
				}
				file, err := s.reportRepo.Put(ctx, report.PutReportFile{
					Path:    target,
					Kind:    report.FileKindPDF,
					OwnerID: e.ID,
					Content: content,
				})
				if err != nil {
					return nil, err
				}
				slips = append(slips, employeeSlip{Employee: e, File: file})
				continue
			}
		}

		summary, ok := summaries[e.ID]
		if !ok {
			summary = payroll.EmployeeMonthSummary{EmployeeID: e.ID, BaseSalary: e.BaseSalary}
		}

		content, err := BuildEmployeePDF(SlipFields{
			Period:       p,
			EmployeeID:   e.ID,
			Name:         e.FullName(),
			CNP:          e.CNP,
			HireDate:     e.HireDate,
			ManagerName:  manager.FullName(),
			BaseSalary:   summary.BaseSalary,
			Bonus:        summary.BonusTotal,
			Adjustment:   summary.AdjustmentTotal,
			Gross:        summary.Gross(true),
			WorkingDays:  monthInfo.WorkingDays,
			VacationDays: summary.VacationDays,
		}, s.cfg.DefaultPDFPass)
		if err != nil {
			return nil, err
		}

		file, err := s.store(ctx, report.PutReportFile{
			Path:    target,
			Kind:    report.FileKindPDF,
			OwnerID: e.ID,
			Content: content,
		})
		if err != nil {
			return nil, err
		}
		slips = append(slips, employeeSlip{Employee: e, File: file})
	}

	return slips, nil
}

// mailSlips sends each employee their own slip. Only delivered slips are returned.
func (s *DeliveryServiceImpl) mailSlips(ctx context.Context, p period.Period, slips []employeeSlip) ([]sentSlip, error) {
	var sent []sentSlip

	for _, slip := range slips {
		data, err := storage.ReadAll(ctx, s.storage, slip.File.Path)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: %w", report.ErrStoreFailed, err)
		}

		ok := s.mailer.Send(ctx, email.Message{
			To:      slip.Employee.Email,
			Subject: fmt.Sprintf(s.cfg.PDFSubject, p),
			Body:    s.cfg.PDFBody,
			Attachments: []email.Attachment{
				{Filename: path.Base(slip.File.Path), ContentType: report.ContentTypeFor(report.FileKindPDF), Data: data},
			},
		})
		if !ok {
			slog.WarnContext(ctx, "Salary slip email not delivered", "employee_id", slip.Employee.ID, "period", p.String())
			continue
		}

		sent = append(sent, sentSlip{EmployeeID: slip.Employee.ID, Path: slip.File.Path, Data: data})
	}

	return sent, nil
}

// bundleSlips zips the sent slips and stores the bundle as an archived record.
func (s *DeliveryServiceImpl) bundleSlips(ctx context.Context, managerID string, p period.Period, slips []sentSlip) (report.ReportFile, error) {
	entries := make([]render.ZipEntry, 0, len(slips))
	for _, slip := range slips {
		entries = append(entries, render.ZipEntry{Name: path.Base(slip.Path), Data: slip.Data})
	}

	content, err := render.Zip(entries)
	if err != nil {
		return report.ReportFile{}, fmt.Errorf("%w: %w", report.ErrRenderFailed, err)
	}

	return s.store(ctx, report.PutReportFile{
		Path:     archiveZipPath(s.cfg.BaseDir, managerID, p),
		Kind:     report.FileKindZip,
		OwnerID:  managerID,
		Archived: true,
		Content:  content,
	})
}

// store uploads the bytes to blob storage, then upserts the record with inline content.
func (s *DeliveryServiceImpl) store(ctx context.Context, file report.PutReportFile) (report.ReportFile, error) {
	if _, err := s.storage.Upload(ctx, bytes.NewReader(file.Content), file.Path, file.ResolvedContentType()); err != nil {
		return report.ReportFile{}, fmt.Errorf("%w: %w", report.ErrStoreFailed, err)
	}
	return s.reportRepo.Put(ctx, file)
}

// fileIDAt looks up the record id for a replayed result path, empty if it is gone.
func (s *DeliveryServiceImpl) fileIDAt(ctx context.Context, resultPath string) string {
	rec, err := s.reportRepo.GetByPath(ctx, resultPath)
	if err != nil {
		slog.WarnContext(ctx, "Failed to look up replayed report", "path", resultPath, "error", err)
		return ""
	}
	if rec == nil {
		return ""
	}
	return rec.ID
}

// ========== QUERIES ==========

func (s *DeliveryServiceImpl) ListReports(ctx context.Context, filter report.ReportFileFilter) (report.ListReportFilesResponse, error) {
	files, total, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		return report.ListReportFilesResponse{}, err
	}

	data := make([]report.ReportFileResponse, 0, len(files))
	for _, f := range files {
		data = append(data, report.ToReportFileResponse(f))
	}
	return report.ListReportFilesResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *DeliveryServiceImpl) GetReport(ctx context.Context, id string) (report.ReportFileResponse, error) {
	f, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return report.ReportFileResponse{}, err
	}
	return report.ToReportFileResponse(f), nil
}

// DownloadReport serves inline content when present and falls back to blob storage.
func (s *DeliveryServiceImpl) DownloadReport(ctx context.Context, id string) (report.Download, error) {
	f, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return report.Download{}, err
	}

	contentType := report.ContentTypeFor(f.Kind)
	if f.ContentType != nil {
		contentType = *f.ContentType
	}

	data := f.Content
	if data == nil {
		data, err = storage.ReadAll(ctx, s.storage, f.Path)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return report.Download{}, report.ErrReportContentGone
			}
			return report.Download{}, fmt.Errorf("%w: %w", report.ErrStoreFailed, err)
		}
	}

	return report.Download{
		Filename:    f.Filename(),
		ContentType: contentType,
		Data:        data,
	}, nil
}
