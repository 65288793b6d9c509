package model

type Client struct {
	ID         int64  `json:"id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	Patronymic string `json:"patronymic,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email"`
	Address    string `json:"address,omitempty"`
}

func (c Client) FullName() string {
	if c.Patronymic != "" {
		return c.LastName + " " + c.FirstName + " " + c.Patronymic
	}
	return c.LastName + " " + c.FirstName
}
