package models

// RosterUser is one entry of the session roster: the locally persisted list
// that Login and Sign Up work against. It is NOT the collection served by
// GET /api/users — the two rosters are independent and never synchronized.
// The auto-increment ID preserves signup order, which matters because login
// takes the first matching entry.
type RosterUser struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"not null"                 json:"username"`
	Password string `gorm:"not null"                 json:"password"`
}

// Setting is a single key/value row of the local store. The only key in use
// is "currentUser"; absence of the row means logged out.
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null"   json:"value"`
}

// CachedProduct mirrors the last product snapshot fetched from the API.
// The API owns the data; this copy may be stale and is overwritten wholesale
// on every successful fetch.
type CachedProduct struct {
	ProductID    int     `gorm:"primaryKey" json:"product_id"`
	Name         string  `gorm:"not null"   json:"name"`
	Description  string  `json:"description"`
	CategoryName string  `json:"category_name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image,omitempty"`
}
