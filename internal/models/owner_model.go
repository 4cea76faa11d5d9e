package models

import "time"

// OwnerStatus is the lifecycle status of an owner record.
type OwnerStatus string

const (
	// OwnerActive marks the owner currently holding a flat.
	OwnerActive OwnerStatus = "Active"
	// OwnerOld marks a previous owner retained for history. Old owners are
	// never referenced as a flat's current owner.
	OwnerOld OwnerStatus = "Old"
)

// FamilyDetails is the family composition sub-record of an owner.
// All counts are non-negative; absent counts default to zero.
type FamilyDetails struct {
	TotalMembers int `json:"totalMembers" firestore:"totalMembers"`
	Adults       int `json:"adults" firestore:"adults"`
	Children     int `json:"children" firestore:"children"`
	Males        int `json:"males" firestore:"males"`
	Females      int `json:"females" firestore:"females"`
}

// EmergencyContact is the emergency contact sub-record of an owner.
type EmergencyContact struct {
	Name     string `json:"name,omitempty" firestore:"name,omitempty"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Relation string `json:"relation,omitempty" firestore:"relation,omitempty"`
}

// OwnerDocuments holds the identity document references of an owner.
type OwnerDocuments struct {
	Aadhar string `json:"aadhar,omitempty" firestore:"aadhar,omitempty"` // 12 digits
	PAN    string `json:"pan,omitempty" firestore:"pan,omitempty"`       // e.g. "ABCDE1234F", stored uppercase
	Lease  string `json:"lease,omitempty" firestore:"lease,omitempty"`
}

// Owner represents a person linked to a flat.
// An Active owner references at most one flat, and that flat's OwnerID must
// equal this owner's ID.
type Owner struct {
	ID               string            `json:"id" firestore:"-"` // Document ID, auto-generated
	Name             string            `json:"name" firestore:"name"`
	Email            string            `json:"email" firestore:"email"`
	Phone            string            `json:"phone" firestore:"phone"`
	Address          string            `json:"address,omitempty" firestore:"address,omitempty"`
	FlatID           string            `json:"flatId" firestore:"flatId"`
	OccupancyDate    string            `json:"occupancyDate,omitempty" firestore:"occupancyDate,omitempty"` // YYYY-MM-DD
	Status           OwnerStatus       `json:"status" firestore:"status"`
	FamilyDetails    *FamilyDetails    `json:"familyDetails,omitempty" firestore:"familyDetails,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty" firestore:"emergencyContact,omitempty"`
	Documents        *OwnerDocuments   `json:"documents,omitempty" firestore:"documents,omitempty"`
	CreatedAt        time.Time         `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt        time.Time         `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
