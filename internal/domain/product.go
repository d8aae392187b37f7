package domain

import "time"

type ProductCategory string

const (
	ProductCategoryBeverage  ProductCategory = "beverage"
	ProductCategorySnack     ProductCategory = "snack"
	ProductCategoryEquipment ProductCategory = "equipment"
	ProductCategoryOther     ProductCategory = "other"
)

type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Category   ProductCategory `json:"category"`
	PriceCents int64           `json:"price_cents"`
	IsActive   bool            `json:"is_active"`
	Stock      *int            `json:"stock"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Consumption is a product sold against a booking. UnitPriceCents is a
// snapshot of the product price at sale time.
type Consumption struct {
	ID              int64     `json:"id"`
	BookingID       int64     `json:"booking_id"`
	ProductID       int64     `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	UnitPriceCents  int64     `json:"unit_price_cents"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

func (c *Consumption) Recalculate() {
	c.TotalPriceCents = int64(c.Quantity) * c.UnitPriceCents
}
