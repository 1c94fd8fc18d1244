package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Arial"
	pdfPageWidth  = 190.0 // A4 minus 10mm margins
	pdfLineHeight = 5.0
	pdfRowHeight  = 6.0
)

// PDF renders d as an A4 document.
func PDF(d Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.SetTitle(d.Title(), true)
	pdf.AddPage()

	// Core fonts are cp1252; Turkish-only glyphs degrade to close Latin forms.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFont, "B", 14)
	pdf.MultiCell(0, 8, tr(d.Title()), "", "L", false)
	if !d.GeneratedAt.IsZero() {
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, pdfLineHeight, "Generated "+d.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	}

	for _, s := range d.sections() {
		pdf.Ln(4)
		pdf.SetFont(pdfFont, "B", 12)
		pdf.CellFormat(0, 7, tr(s.Title), "", 1, "L", false, 0, "")

		pdf.SetFont(pdfFont, "", 9)
		for _, line := range s.Lines {
			pdf.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
		}
		if len(s.Header) > 0 {
			renderPDFTable(pdf, tr, s.Header, s.Rows)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// renderPDFTable gives the first column half the page and splits the rest
// evenly.
func renderPDFTable(pdf *fpdf.Fpdf, tr func(string) string, header []string, rows [][]string) {
	widths := columnWidths(len(header))

	pdf.Ln(1)
	pdf.SetFont(pdfFont, "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], pdfRowHeight, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 8)
	for _, row := range rows {
		for i := range header {
			cell := ""
			if i < len(row) {
				cell = fitCell(pdf, tr(row[i]), widths[i]-2)
			}
			align := "L"
			if i > 0 {
				align = "R"
			}
			pdf.CellFormat(widths[i], pdfRowHeight, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetFont(pdfFont, "", 9)
}

func columnWidths(n int) []float64 {
	if n == 1 {
		return []float64{pdfPageWidth}
	}
	first := pdfPageWidth / 2
	if n > 3 {
		first = pdfPageWidth * 0.4
	}
	rest := (pdfPageWidth - first) / float64(n-1)
	w := make([]float64, n)
	w[0] = first
	for i := 1; i < n; i++ {
		w[i] = rest
	}
	return w
}

// fitCell truncates s with an ellipsis so it stays inside width. s is
// already cp1252, one byte per glyph.
func fitCell(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
