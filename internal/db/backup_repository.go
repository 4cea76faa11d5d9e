package db

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"society-backend-go/internal/models"
)

const backupsCollection = "backups"

// firestoreBackupRepository implements the BackupRepository interface using Firestore.
type firestoreBackupRepository struct {
	client *firestore.Client
}

// NewFirestoreBackupRepository creates a new instance of firestoreBackupRepository.
func NewFirestoreBackupRepository(client *firestore.Client) BackupRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for BackupRepository.")
	}
	return &firestoreBackupRepository{client: client}
}

// Create writes a backup snapshot document with an auto-generated ID.
func (r *firestoreBackupRepository) Create(ctx context.Context, backup *models.Backup) (string, error) {
	docRef := r.client.Collection(backupsCollection).NewDoc()
	backup.ID = docRef.ID
	if _, err := docRef.Create(ctx, backup); err != nil {
		return "", classify(err, "failed to create backup")
	}
	return docRef.ID, nil
}

// SnapshotCollection reads every document of a collection as a raw field map
// with its id included. The documents are not decoded into entity models so
// the snapshot survives schema drift.
func (r *firestoreBackupRepository) SnapshotCollection(ctx context.Context, collection string) ([]map[string]interface{}, error) {
	if collection == "" {
		return nil, errors.New("collection cannot be empty for SnapshotCollection operation")
	}
	iter := r.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs []map[string]interface{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify(err, "failed to snapshot collection '%s'", collection)
		}
		data := doc.Data()
		data["id"] = doc.Ref.ID
		docs = append(docs, data)
	}
	return docs, nil
}
