package model

import (
	"fmt"
	"time"
)

type ContractStatus string

const (
	ContractStatusPending    ContractStatus = "pending"
	ContractStatusActive     ContractStatus = "active"
	ContractStatusTerminated ContractStatus = "terminated"
)

// ParseContractStatus rejects any value outside the known status set.
func ParseContractStatus(raw string) (ContractStatus, error) {
	switch ContractStatus(raw) {
	case ContractStatusPending, ContractStatusActive, ContractStatusTerminated:
		return ContractStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown contract status %q", raw)
	}
}

// CanTransition is the exhaustive transition table for contract statuses.
// pending to active is the approval flip; terminated is reachable from both
// live statuses and is final.
func (s ContractStatus) CanTransition(to ContractStatus) bool {
	switch s {
	case ContractStatusPending:
		return to == ContractStatusActive || to == ContractStatusTerminated
	case ContractStatusActive:
		return to == ContractStatusTerminated
	default:
		return false
	}
}

type Contract struct {
	ID          int64            `json:"id"`
	Client      *Client          `json:"client,omitempty"`
	Service     *SecurityService `json:"service,omitempty"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	TotalAmount float64          `json:"total_amount"`
	Status      ContractStatus   `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}
