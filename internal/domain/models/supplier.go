package models

import "time"

// Supplier is a vendor the farm buys supplies from. ItemCount is derived by
// scanning inventory items that carry the supplier's name.
type Supplier struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Contact    string    `bson:"contact,omitempty" json:"contact,omitempty"`
	Phone      string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email      string    `bson:"email,omitempty" json:"email,omitempty"`
	Address    string    `bson:"address,omitempty" json:"address,omitempty"`
	Categories []string  `bson:"categories,omitempty" json:"categories,omitempty"`
	ItemCount  int       `bson:"-" json:"itemCount"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateSupplierInput carries the fields accepted when registering a supplier.
type CreateSupplierInput struct {
	Name       string   `json:"name"`
	Contact    string   `json:"contact"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	Address    string   `json:"address"`
	Categories []string `json:"categories"`
}

// UpdateSupplierInput is a partial update; nil fields are left untouched.
type UpdateSupplierInput struct {
	Name       *string   `json:"name"`
	Contact    *string   `json:"contact"`
	Phone      *string   `json:"phone"`
	Email      *string   `json:"email"`
	Address    *string   `json:"address"`
	Categories *[]string `json:"categories"`
}
