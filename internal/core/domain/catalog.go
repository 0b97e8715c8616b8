package domain

import "time"

type Product struct {
	ID        string
	SKU       string
	Name      string
	CreatedAt time.Time
}

type Supplier struct {
	ID        string
	Name      string
	Contact   string
	CreatedAt time.Time
}

type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
}
