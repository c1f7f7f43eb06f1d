package models

import "time"

// SalesTransaction records one completed sale. RoosterID is an informational
// link, not an enforced reference.
type SalesTransaction struct {
	ID            string    `bson:"_id" json:"id"`
	DisplayID     string    `bson:"displayId" json:"displayId"`
	RoosterID     string    `bson:"roosterId,omitempty" json:"roosterId,omitempty"`
	RoosterName   string    `bson:"roosterName,omitempty" json:"roosterName,omitempty"`
	Buyer         string    `bson:"buyer" json:"buyer"`
	Amount        float64   `bson:"amount" json:"amount"`
	PaymentMethod string    `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	Notes         *string   `bson:"notes,omitempty" json:"notes,omitempty"`
	SoldAt        time.Time `bson:"soldAt" json:"soldAt"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateSaleInput carries the fields accepted when recording a sale.
type CreateSaleInput struct {
	RoosterID     string     `json:"roosterId"`
	RoosterName   string     `json:"roosterName"`
	Buyer         string     `json:"buyer"`
	Amount        *float64   `json:"amount"`
	PaymentMethod string     `json:"paymentMethod"`
	Notes         *string    `json:"notes"`
	SoldAt        *time.Time `json:"soldAt"`
}

// UpdateSaleInput is a partial update; nil fields are left untouched.
type UpdateSaleInput struct {
	Buyer         *string    `json:"buyer"`
	Amount        *float64   `json:"amount"`
	PaymentMethod *string    `json:"paymentMethod"`
	Notes         *string    `json:"notes"`
	SoldAt        *time.Time `json:"soldAt"`
}

// SalesStats is the aggregate returned by the sales stats endpoint, computed
// by a full scan of the sales collection.
type SalesStats struct {
	TotalRevenue   float64 `bson:"totalRevenue" json:"totalRevenue"`
	TotalSales     int     `bson:"totalSales" json:"totalSales"`
	MonthRevenue   float64 `bson:"monthRevenue" json:"monthRevenue"`
	MonthChangePct float64 `bson:"monthChangePct" json:"monthChangePct"`
}
