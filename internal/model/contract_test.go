package model

import "testing"

func TestParseContractStatus(t *testing.T) {
	for _, raw := range []string{"pending", "active", "terminated"} {
		status, err := ParseContractStatus(raw)
		if err != nil {
			t.Fatalf("ParseContractStatus(%q): %v", raw, err)
		}
		if string(status) != raw {
			t.Fatalf("ParseContractStatus(%q) = %q", raw, status)
		}
	}

	for _, raw := range []string{"", "Pending", "ACTIVE", "cancelled", "approved"} {
		if _, err := ParseContractStatus(raw); err == nil {
			t.Fatalf("ParseContractStatus(%q): expected error", raw)
		}
	}
}

func TestContractStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ContractStatus
		want     bool
	}{
		{ContractStatusPending, ContractStatusActive, true},
		{ContractStatusPending, ContractStatusTerminated, true},
		{ContractStatusPending, ContractStatusPending, false},
		{ContractStatusActive, ContractStatusTerminated, true},
		{ContractStatusActive, ContractStatusPending, false},
		{ContractStatusActive, ContractStatusActive, false},
		{ContractStatusTerminated, ContractStatusPending, false},
		{ContractStatusTerminated, ContractStatusActive, false},
		{ContractStatus("bogus"), ContractStatusActive, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
