package models

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserProfileDetails is the free-form profile sub-record of a user account.
type UserProfileDetails struct {
	FirstName   string `json:"firstName,omitempty" firestore:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty" firestore:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty" firestore:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty" firestore:"address,omitempty"`
}

// User represents an application user account. The document ID is the
// Firebase Auth UID. Created on first sign-in, deleted with the account.
type User struct {
	ID          string             `json:"id" firestore:"-"` // Firebase Auth UID, the document ID
	Email       string             `json:"email" firestore:"email"`
	DisplayName string             `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhotoURL    string             `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Role        string             `json:"role" firestore:"role"` // "admin" or "user"
	IsActive    bool               `json:"isActive" firestore:"isActive"`
	LastLoginAt *time.Time         `json:"lastLoginAt,omitempty" firestore:"lastLoginAt,omitempty"`
	Profile     UserProfileDetails `json:"profile" firestore:"profile"`
	CreatedAt   time.Time          `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time          `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
