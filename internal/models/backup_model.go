package models

import "time"

// Backup is a point-in-time snapshot of the managed collections, written by
// the scheduled backup job into the "backups" collection.
type Backup struct {
	ID        string                              `json:"id" firestore:"-"`
	Type      string                              `json:"type" firestore:"type"` // "daily"
	Timestamp time.Time                           `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	Data      map[string][]map[string]interface{} `json:"data" firestore:"data"` // collection name -> raw documents
}
