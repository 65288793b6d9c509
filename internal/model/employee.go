package model

type Employee struct {
	ID           int64  `json:"id"`
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	Patronymic   string `json:"patronymic,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Login        string `json:"login"`
	Position     string `json:"position"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

func (e Employee) FullName() string {
	if e.Patronymic != "" {
		return e.LastName + " " + e.FirstName + " " + e.Patronymic
	}
	return e.LastName + " " + e.FirstName
}
