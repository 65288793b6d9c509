package model

// SecurityService is a protection service offered to clients (patrol,
// stationary guard post, alarm response).
type SecurityService struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}
