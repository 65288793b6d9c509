package model

// GuardObject is a physical site protected under exactly one contract.
// It must belong to the same client as its contract.
type GuardObject struct {
	ID          int64   `json:"id"`
	ClientID    int64   `json:"client_id"`
	ContractID  int64   `json:"contract_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Description string  `json:"description,omitempty"`
}
