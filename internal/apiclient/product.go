package apiclient

import (
	"encoding/json"
	"strconv"
)

// Product is the record shape of GET /api/products.
type Product struct {
	ProductID    int    `json:"product_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CategoryName string `json:"category_name"`
	Price        Price  `json:"price"`
	Quantity     int    `json:"quantity"`
	Image        string `json:"image,omitempty"`
}

// ManagedUser is the record shape of GET /api/users — the administratively
// managed roster, unrelated to the locally persisted session roster.
type ManagedUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Price tolerates the API serializing price as either a JSON number or a
// numeric string. Anything unparseable decodes to 0 rather than failing the
// whole product list.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Price(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			*p = Price(n)
			return nil
		}
	}
	*p = 0
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

func (p Price) Float64() float64 { return float64(p) }
