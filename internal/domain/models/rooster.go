package models

import "time"

// RoosterStatus tracks where a bird sits in its sales lifecycle.
type RoosterStatus string

const (
	RoosterAvailable RoosterStatus = "available"
	RoosterReserved  RoosterStatus = "reserved"
	RoosterSold      RoosterStatus = "sold"
	RoosterDeceased  RoosterStatus = "deceased"
)

// Rooster represents one bird in the farm inventory.
type Rooster struct {
	ID          string        `bson:"_id" json:"id"`
	DisplayID   string        `bson:"displayId" json:"displayId"`
	Name        string        `bson:"name" json:"name"`
	Breed       string        `bson:"breed" json:"breed"`
	HatchDate   *time.Time    `bson:"hatchDate,omitempty" json:"hatchDate,omitempty"`
	WeightKg    *float64      `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Price       *float64      `bson:"price,omitempty" json:"price,omitempty"`
	Status      RoosterStatus `bson:"status" json:"status"`
	Description *string       `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}

// CreateRoosterInput carries the fields accepted when registering a bird.
type CreateRoosterInput struct {
	Name        string     `json:"name"`
	Breed       string     `json:"breed"`
	HatchDate   *time.Time `json:"hatchDate"`
	WeightKg    *float64   `json:"weightKg"`
	Price       *float64   `json:"price"`
	Description *string    `json:"description"`
}

// UpdateRoosterInput is a partial update; nil fields are left untouched.
type UpdateRoosterInput struct {
	Name        *string        `json:"name"`
	Breed       *string        `json:"breed"`
	HatchDate   *time.Time     `json:"hatchDate"`
	WeightKg    *float64       `json:"weightKg"`
	Price       *float64       `json:"price"`
	Status      *RoosterStatus `json:"status"`
	Description *string        `json:"description"`
}

// Breed is a registry entry; names are unique and referenced by roosters as
// plain strings.
type Breed struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Origin      string    `bson:"origin,omitempty" json:"origin,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
