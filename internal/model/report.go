package model

import "time"

// RevenueReport summarizes contracts created within a period for the
// spreadsheet export.
type RevenueReport struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Contracts    []Contract
	TotalRevenue float64
}

// ContractDocument is the data set for the printable contract summary.
type ContractDocument struct {
	Contract     Contract
	GuardObjects []GuardObject
}
