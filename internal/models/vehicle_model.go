package models

import "time"

// Vehicle represents a vehicle registered against an owner and a flat.
// OwnerID and FlatID should agree with the referenced owner's linked flat;
// this is a best-effort check, not strictly enforced at the store layer.
type Vehicle struct {
	ID            string    `json:"id" firestore:"-"` // Document ID, auto-generated
	VehicleNumber string    `json:"vehicleNumber" firestore:"vehicleNumber"` // e.g. "MH12AB1234", stored uppercase
	Company       string    `json:"company" firestore:"company"`
	Model         string    `json:"model,omitempty" firestore:"model,omitempty"`
	Color         string    `json:"color,omitempty" firestore:"color,omitempty"`
	Type          string    `json:"type" firestore:"type"` // e.g. "car", "motorcycle", "scooter"
	FuelType      string    `json:"fuelType,omitempty" firestore:"fuelType,omitempty"`
	Year          int       `json:"year,omitempty" firestore:"year,omitempty"`
	OwnerID       string    `json:"ownerId" firestore:"ownerId"`
	FlatID        string    `json:"flatId" firestore:"flatId"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// VehicleLookup is the denormalized read-side view of a vehicle joined with
// its owner and flat, used by the plate-number lookup screen.
type VehicleLookup struct {
	Vehicle *Vehicle `json:"vehicle"`
	Owner   *Owner   `json:"owner,omitempty"`
	Flat    *Flat    `json:"flat,omitempty"`
}
