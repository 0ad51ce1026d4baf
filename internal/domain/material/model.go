package material

import (
	"strings"
	"time"
)

// Status is the stock status an operator assigns to a material.
type Status string

const (
	StatusInStock    Status = "In Stock"
	StatusLowStock   Status = "Low Stock"
	StatusOutOfStock Status = "Out of Stock"
	StatusOnOrder    Status = "On Order"
)

// Valid reports whether s is a known stock status.
func (s Status) Valid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock, StatusOnOrder:
		return true
	}
	return false
}

// Material is one inventory line in the ledger.
type Material struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name" validate:"required"`
	Category     string    `json:"category"`
	CurrentStock float64   `json:"currentStock" validate:"gte=0"`
	ReorderLevel float64   `json:"reorderLevel" validate:"gte=0"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"pricePerUnit" validate:"gte=0"`
	Supplier     string    `json:"supplier"`
	Status       Status    `json:"status"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// NameKey normalizes a material name for matching usage rows to the ledger.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RequestStatus is the lifecycle state of a material request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestOrdered   RequestStatus = "ordered"
	RequestInTransit RequestStatus = "in transit"
	RequestDelivered RequestStatus = "delivered"
	RequestRejected  RequestStatus = "rejected"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestOrdered, RequestInTransit, RequestDelivered, RequestRejected:
		return true
	}
	return false
}

// Request asks for a material to be procured for a site.
type Request struct {
	ID                string        `json:"_id"`
	MaterialName      string        `json:"materialName" validate:"required"`
	Quantity          float64       `json:"quantity" validate:"gt=0"`
	PreferredSupplier string        `json:"preferredSupplier"`
	RequiredDate      string        `json:"requiredDate"`
	SupervisorName    string        `json:"supervisorName"`
	Notes             string        `json:"notes"`
	Status            RequestStatus `json:"status"`
	RequestedDate     time.Time     `json:"requestedDate"`
}

// Summary is the inventory statistics block shown above the materials table.
type Summary struct {
	Total        int     `json:"total"`
	TotalValue   float64 `json:"totalValue"`
	InStock      int     `json:"inStock"`
	LowStock     int     `json:"lowStock"`
	OutOfStock   int     `json:"outOfStock"`
	OnOrder      int     `json:"onOrder"`
	BelowReorder int     `json:"belowReorder"`
}
