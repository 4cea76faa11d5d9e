package models

import "time"

// FlatStatus is the stored occupancy status of a flat.
type FlatStatus string

const (
	FlatAvailable   FlatStatus = "Available"
	FlatOccupied    FlatStatus = "Occupied"
	FlatMaintenance FlatStatus = "Maintenance"
)

// IsValid reports whether s is one of the known flat statuses.
func (s FlatStatus) IsValid() bool {
	switch s {
	case FlatAvailable, FlatOccupied, FlatMaintenance:
		return true
	}
	return false
}

// Flat represents a single unit in the complex.
// OwnerID is the current active owner; PreviousOwnerID is kept for history
// after an ownership transfer. The stored Status can drift from the
// occupancy derived from owner records; see core.OccupancyService.
type Flat struct {
	ID              string     `json:"id" firestore:"-"` // Document ID, auto-generated
	FlatNumber      string     `json:"flatNumber" firestore:"flatNumber"` // e.g. "A-101", unique
	Floor           int        `json:"floor" firestore:"floor"`
	Type            string     `json:"type" firestore:"type"` // e.g. "1BHK", "2BHK", "Studio", "Penthouse"
	Size            int        `json:"size,omitempty" firestore:"size,omitempty"` // square feet
	MonthlyRent     float64    `json:"monthlyRent,omitempty" firestore:"monthlyRent,omitempty"`
	Deposit         float64    `json:"deposit,omitempty" firestore:"deposit,omitempty"`
	Description     string     `json:"description,omitempty" firestore:"description,omitempty"`
	Status          FlatStatus `json:"status" firestore:"status"`
	OwnerID         string     `json:"ownerId" firestore:"ownerId"`
	PreviousOwnerID string     `json:"previousOwnerId" firestore:"previousOwnerId"`
	CreatedAt       time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt       time.Time  `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
