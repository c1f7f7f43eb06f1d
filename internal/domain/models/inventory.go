package models

import "time"

// StockStatus classifies an inventory item's stock level against its threshold.
type StockStatus string

const (
	StockAdequate StockStatus = "adequate"
	StockLow      StockStatus = "low"
	StockCritical StockStatus = "critical"
)

// InventoryItem represents one stockable farm supply.
type InventoryItem struct {
	ID            string      `bson:"_id" json:"id"`
	DisplayID     string      `bson:"displayId" json:"displayId"`
	Name          string      `bson:"name" json:"name"`
	Category      string      `bson:"category" json:"category"`
	CurrentStock  float64     `bson:"currentStock" json:"currentStock"`
	MinStock      float64     `bson:"minStock" json:"minStock"`
	Unit          string      `bson:"unit" json:"unit"`
	Supplier      string      `bson:"supplier" json:"supplier"`
	Price         *float64    `bson:"price,omitempty" json:"price,omitempty"`
	Location      *string     `bson:"location,omitempty" json:"location,omitempty"`
	Description   *string     `bson:"description,omitempty" json:"description,omitempty"`
	ExpiryDate    *time.Time  `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	Status        StockStatus `bson:"status" json:"status"`
	CreatedAt     time.Time   `bson:"createdAt" json:"createdAt"`
	LastRestocked time.Time   `bson:"lastRestocked" json:"lastRestocked"`
}

// CreateInventoryInput carries the fields accepted when registering a new item.
// Numeric fields are pointers so that a missing value can be told apart from zero.
type CreateInventoryInput struct {
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	CurrentStock  *float64   `json:"currentStock"`
	MinStock      *float64   `json:"minStock"`
	Unit          string     `json:"unit"`
	Supplier      string     `json:"supplier"`
	Price         *float64   `json:"price"`
	Location      *string    `json:"location"`
	Description   *string    `json:"description"`
	LastRestocked *time.Time `json:"lastRestocked"`
	ExpiryDate    *time.Time `json:"expiryDate"`
}

// InventoryActivity is an append-only audit record of one restock or consume event.
type InventoryActivity struct {
	ID          string    `bson:"_id" json:"id"`
	ItemID      string    `bson:"itemId" json:"itemId"`
	ItemName    string    `bson:"itemName" json:"itemName"`
	Amount      float64   `bson:"amount" json:"amount"`
	Unit        string    `bson:"unit" json:"unit"`
	Reason      string    `bson:"reason" json:"reason"`
	StockBefore float64   `bson:"stockBefore" json:"stockBefore"`
	StockAfter  float64   `bson:"stockAfter" json:"stockAfter"`
	Actor       string    `bson:"actor" json:"actor"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// InventoryStats is the denormalized aggregate recomputed by scanning the full
// collection on every mutation.
type InventoryStats struct {
	TotalItems     int       `bson:"totalItems" json:"totalItems"`
	LowStockAlerts int       `bson:"lowStockAlerts" json:"lowStockAlerts"`
	CriticalItems  int       `bson:"criticalItems" json:"criticalItems"`
	MonthlySpend   float64   `bson:"monthlySpend" json:"monthlySpend"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
