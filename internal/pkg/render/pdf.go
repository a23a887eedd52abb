package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Field is one labelled line on a rendered document.
type Field struct {
	Label string
	Value string
}

// PDF renders a single A4 page with a title and one line per field. When
// password is non-empty the document is encrypted and needs it to open.
func PDF(title string, fields []Field, password string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	if password != "" {
		// Must be set before the first page is added.
		pdf.SetProtection(fpdf.CnProtectPrint, password, "")
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, f := range fields {
		pdf.CellFormat(60, 8, tr(f.Label+":"), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, tr(f.Value), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
