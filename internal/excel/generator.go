package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/krosec/sec-guard/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateRevenue renders the revenue report: one row per contract created
// in the period, plus a grand total.
func (g *Generator) GenerateRevenue(report model.RevenueReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Revenue"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Period start")
	set("B1", formatDate(report.PeriodStart))
	set("A2", "Period end")
	set("B2", formatDate(report.PeriodEnd))
	set("A3", "Contracts")
	set("B3", len(report.Contracts))

	tableRow := 5
	headers := []string{
		"Contract ID",
		"Client",
		"Service",
		"Start date",
		"End date",
		"Amount",
		"Status",
		"Created at",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, contract := range report.Contracts {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), contract.ID)
		set(fmt.Sprintf("B%d", row), clientName(contract))
		set(fmt.Sprintf("C%d", row), serviceName(contract))
		set(fmt.Sprintf("D%d", row), formatDate(contract.StartDate))
		set(fmt.Sprintf("E%d", row), formatDate(contract.EndDate))
		set(fmt.Sprintf("F%d", row), contract.TotalAmount)
		set(fmt.Sprintf("G%d", row), string(contract.Status))
		set(fmt.Sprintf("H%d", row), contract.CreatedAt.Format("02.01.2006 15:04"))
	}

	totalRow := tableRow + len(report.Contracts) + 2
	set(fmt.Sprintf("E%d", totalRow), "TOTAL:")
	set(fmt.Sprintf("F%d", totalRow), report.TotalRevenue)

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "C", 30)
	_ = file.SetColWidth(sheet, "D", "E", 14)
	_ = file.SetColWidth(sheet, "F", "H", 18)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clientName(contract model.Contract) string {
	if contract.Client == nil {
		return ""
	}
	return contract.Client.FullName()
}

func serviceName(contract model.Contract) string {
	if contract.Service == nil {
		return ""
	}
	return contract.Service.Name
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
