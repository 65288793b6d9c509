package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/krosec/sec-guard/internal/model"
)

func TestGenerateRevenue(t *testing.T) {
	report := model.RevenueReport{
		PeriodStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		Contracts: []model.Contract{
			{
				ID:          10,
				Client:      &model.Client{LastName: "Ivanov", FirstName: "Ivan"},
				Service:     &model.SecurityService{Name: "Stationary guard post"},
				StartDate:   time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				TotalAmount: 42000,
				Status:      model.ContractStatusActive,
				CreatedAt:   time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
			},
			{
				ID:          11,
				StartDate:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
				TotalAmount: 8000,
				Status:      model.ContractStatusPending,
				CreatedAt:   time.Date(2024, 2, 9, 9, 0, 0, 0, time.UTC),
			},
		},
		TotalRevenue: 50000,
	}

	content, err := NewGenerator().GenerateRevenue(report)
	if err != nil {
		t.Fatalf("GenerateRevenue: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("empty workbook")
	}

	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer file.Close()

	cases := []struct {
		cell string
		want string
	}{
		{"B1", "01.02.2024"},
		{"B3", "2"},
		{"A5", "Contract ID"},
		{"B6", "Ivanov Ivan"},
		{"C6", "Stationary guard post"},
		{"G6", "active"},
		{"B7", ""},
		{"E9", "TOTAL:"},
		{"F9", "50000"},
	}
	for _, tc := range cases {
		got, err := file.GetCellValue("Revenue", tc.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", tc.cell, err)
		}
		if got != tc.want {
			t.Errorf("cell %s = %q, want %q", tc.cell, got, tc.want)
		}
	}
}
