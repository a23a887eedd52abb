package report

import (
	"fmt"
	"path"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/period"
)

// Working copies live under {base}/{csv|pdf}/{yyyy-mm}/, archived copies under
// {base}/archives/{yyyy-mm}/ with PDFs in a pdfs/ subfolder.

func csvPath(base, managerID string, p period.Period) string {
	return path.Join(base, "csv", p.String(), managerID+".csv")
}

func pdfPath(base, employeeID string, p period.Period) string {
	return path.Join(base, "pdf", p.String(), employeeID+".pdf")
}

func archiveCSVPath(base, managerID string, p period.Period) string {
	return path.Join(base, "archives", p.String(), managerID+".csv")
}

func archivePDFPath(base, employeeID string, p period.Period) string {
	return path.Join(base, "archives", p.String(), "pdfs", employeeID+".pdf")
}

func archiveZipPath(base, managerID string, p period.Period) string {
	return path.Join(base, "archives", p.String(), managerID+"_pdfs.zip")
}

func sendCSVEndpoint(managerID string, p period.Period) string {
	return fmt.Sprintf("send_manager_csv:%s:%s", managerID, p)
}

func sendPDFsEndpoint(managerID string, p period.Period) string {
	return fmt.Sprintf("send_employee_pdfs:%s:%s", managerID, p)
}
