package service

import (
	"context"
	"fmt"
	"time"

	"github.com/krosec/sec-guard/internal/model"
)

type ExcelGenerator interface {
	GenerateRevenue(report model.RevenueReport) ([]byte, error)
}

type PDFGenerator interface {
	GenerateContract(doc model.ContractDocument) ([]byte, error)
}

type ReportService struct {
	store Store
	excel ExcelGenerator
	pdf   PDFGenerator
}

func NewReportService(store Store, excel ExcelGenerator, pdf PDFGenerator) *ReportService {
	return &ReportService{store: store, excel: excel, pdf: pdf}
}

type ReportResult struct {
	FileName string
	Content  []byte
}

// GenerateRevenueReport renders an xlsx with every contract created in the
// period and the total contracted amount.
func (s *ReportService) GenerateRevenueReport(ctx context.Context, periodStart, periodEnd time.Time) (*ReportResult, error) {
	if periodStart.IsZero() || periodEnd.IsZero() {
		return nil, fmt.Errorf("%w: period dates are required", ErrInvalidInput)
	}
	start := dateOnly(periodStart)
	end := dateOnly(periodEnd)
	if start.After(end) {
		return nil, fmt.Errorf("%w: period start must be before or equal to period end", ErrInvalidInput)
	}

	contracts, err := s.store.ListContractsCreatedBetween(ctx, start, end.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	report := model.RevenueReport{
		PeriodStart: start,
		PeriodEnd:   end,
		Contracts:   contracts,
	}
	for _, contract := range contracts {
		report.TotalRevenue += contract.TotalAmount
	}

	content, err := s.excel.GenerateRevenue(report)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("revenue-%s-%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	return &ReportResult{FileName: fileName, Content: content}, nil
}

// ExportContractPDF renders the printable summary of one contract.
func (s *ReportService) ExportContractPDF(ctx context.Context, contractID int64) (*ReportResult, error) {
	contract, err := s.store.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("%w: contract %d", ErrNotFound, contractID)
	}
	objects, err := s.store.FindGuardObjectsByContractID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.GenerateContract(model.ContractDocument{
		Contract:     *contract,
		GuardObjects: objects,
	})
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("contract-%d.pdf", contract.ID)
	return &ReportResult{FileName: fileName, Content: content}, nil
}
