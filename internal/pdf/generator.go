package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/krosec/sec-guard/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// GenerateContract renders a printable summary of one contract: parties,
// dates, amount and the protected sites.
func (g *Generator) GenerateContract(doc model.ContractDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Security Service Contract No. %d", doc.Contract.ID), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Term: %s to %s", formatDate(doc.Contract.StartDate), formatDate(doc.Contract.EndDate)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", doc.Contract.Status), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	if doc.Contract.Client != nil {
		pdf.CellFormat(0, 6, doc.Contract.Client.FullName(), "", 1, "L", false, 0, "")
		if doc.Contract.Client.Address != "" {
			pdf.CellFormat(0, 6, doc.Contract.Client.Address, "", 1, "L", false, 0, "")
		}
		if doc.Contract.Client.Phone != "" {
			pdf.CellFormat(0, 6, doc.Contract.Client.Phone, "", 1, "L", false, 0, "")
		}
	} else {
		pdf.CellFormat(0, 6, "(not assigned)", "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Service", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	if doc.Contract.Service != nil {
		pdf.CellFormat(0, 6, doc.Contract.Service.Name, "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 6, "(not assigned)", "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Contract amount: %.2f", doc.Contract.TotalAmount), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Protected sites", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Name", "Address", "Notes"}
	colWidths := []float64{50, 75, 55}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)
	for _, object := range doc.GuardObjects {
		drawTableRow(pdf, g.fontName, []string{object.Name, object.Address, object.Description}, colWidths, false)
	}
	if len(doc.GuardObjects) == 0 {
		drawTableRow(pdf, g.fontName, []string{"(none)", "", ""}, colWidths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cells []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
