package domain

// Restaurant is the only managed resource. ID is chosen by the client.
type Restaurant struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Phone       string  `json:"phone"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}
