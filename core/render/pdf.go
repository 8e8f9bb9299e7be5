// Package render — PDF renderer.
// Lays the joined rows out as a bordered grid on landscape A4 using gofpdf.
package render

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/tablejoin/core"
)

// columnWidths in mm, matching core.Columns.
var columnWidths = []float64{30, 28, 32, 92, 95}

// PDFRenderer renders joined rows as a PDF table.
type PDFRenderer struct {
	Title string
}

// NewPDFRenderer creates a PDFRenderer with the given document title.
func NewPDFRenderer(title string) *PDFRenderer {
	return &PDFRenderer{Title: title}
}

// Render converts records into PDF bytes.
func (r *PDFRenderer) Render(records []core.CityRecord) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if r.Title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, tr(r.Title), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range core.Columns {
		pdf.CellFormat(columnWidths[i], 7, tr(col), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range records {
		for i, cell := range fields(rec) {
			align := "L"
			if i == 2 {
				align = "R"
			}
			pdf.CellFormat(columnWidths[i], 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
