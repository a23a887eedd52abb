package report

import "context"

// DeliveryService generates, stores, archives and mails monthly payroll reports.
type DeliveryService interface {
	GenerateManagerCSV(ctx context.Context, req GenerateCSVRequest) (GenerateCSVResponse, error)
	SendManagerCSV(ctx context.Context, req SendCSVRequest) (SendCSVResponse, error)
	GenerateEmployeePDFs(ctx context.Context, req GeneratePDFsRequest) (GeneratePDFsResponse, error)
	SendEmployeePDFs(ctx context.Context, req SendPDFsRequest) (SendPDFsResponse, error)

	ListReports(ctx context.Context, filter ReportFileFilter) (ListReportFilesResponse, error)
	GetReport(ctx context.Context, id string) (ReportFileResponse, error)
	DownloadReport(ctx context.Context, id string) (Download, error)
}
