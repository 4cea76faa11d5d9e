package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"society-backend-go/internal/models"
)

const ownersCollection = "owners"

// firestoreOwnerRepository implements the OwnerRepository interface using Firestore.
type firestoreOwnerRepository struct {
	client *firestore.Client
}

// NewFirestoreOwnerRepository creates a new instance of firestoreOwnerRepository.
func NewFirestoreOwnerRepository(client *firestore.Client) OwnerRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for OwnerRepository.")
	}
	return &firestoreOwnerRepository{client: client}
}

// Create adds a new owner document with an auto-generated ID.
func (r *firestoreOwnerRepository) Create(ctx context.Context, owner *models.Owner) (string, error) {
	docRef := r.client.Collection(ownersCollection).NewDoc()
	owner.ID = docRef.ID
	if _, err := docRef.Create(ctx, owner); err != nil {
		return "", classify(err, "failed to create owner")
	}
	return docRef.ID, nil
}

// GetByID retrieves an owner document by its ID.
func (r *firestoreOwnerRepository) GetByID(ctx context.Context, ownerID string) (*models.Owner, error) {
	if ownerID == "" {
		return nil, errors.New("ownerID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(ownersCollection).Doc(ownerID).Get(ctx)
	if err != nil {
		return nil, classify(err, "failed to get owner with ID '%s'", ownerID)
	}

	var owner models.Owner
	if err := docSnap.DataTo(&owner); err != nil {
		return nil, fmt.Errorf("failed to decode owner data for ID '%s': %w", ownerID, err)
	}
	owner.ID = docSnap.Ref.ID

	return &owner, nil
}

// GetAll retrieves every owner, ordered by name.
func (r *firestoreOwnerRepository) GetAll(ctx context.Context) ([]*models.Owner, error) {
	iter := r.client.Collection(ownersCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()
	return r.collect(iter, "failed to iterate owners")
}

// GetByFlatID retrieves all owners linked to a flat, Active and Old alike.
func (r *firestoreOwnerRepository) GetByFlatID(ctx context.Context, flatID string) ([]*models.Owner, error) {
	if flatID == "" {
		return nil, errors.New("flatID cannot be empty for GetByFlatID operation")
	}
	iter := r.client.Collection(ownersCollection).Where("flatId", "==", flatID).Documents(ctx)
	defer iter.Stop()
	return r.collect(iter, fmt.Sprintf("failed to iterate owners for flat '%s'", flatID))
}

func (r *firestoreOwnerRepository) collect(iter *firestore.DocumentIterator, errMsg string) ([]*models.Owner, error) {
	var owners []*models.Owner
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify(err, "%s", errMsg)
		}

		var owner models.Owner
		if err := doc.DataTo(&owner); err != nil {
			log.Printf("Error decoding owner data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		owner.ID = doc.Ref.ID
		owners = append(owners, &owner)
	}
	return owners, nil
}

// Update overwrites the mutable fields of an owner using Set with MergeAll.
func (r *firestoreOwnerRepository) Update(ctx context.Context, owner *models.Owner) error {
	if owner.ID == "" {
		return errors.New("owner ID cannot be empty for Update operation")
	}
	if _, err := r.client.Collection(ownersCollection).Doc(owner.ID).Set(ctx, owner, firestore.MergeAll); err != nil {
		return classify(err, "failed to update owner with ID '%s'", owner.ID)
	}
	return nil
}

// Activate links the owner to a flat and marks it Active in a single write.
func (r *firestoreOwnerRepository) Activate(ctx context.Context, ownerID, flatID string) error {
	if ownerID == "" {
		return errors.New("ownerID cannot be empty for Activate operation")
	}
	updates := []firestore.Update{
		{Path: "flatId", Value: flatID},
		{Path: "status", Value: models.OwnerActive},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := r.client.Collection(ownersCollection).Doc(ownerID).Update(ctx, updates); err != nil {
		return classify(err, "failed to activate owner '%s'", ownerID)
	}
	return nil
}

// SetStatus updates only the lifecycle status field of an owner.
// Setting an already-Old owner to Old again is harmless.
func (r *firestoreOwnerRepository) SetStatus(ctx context.Context, ownerID string, status models.OwnerStatus) error {
	if ownerID == "" {
		return errors.New("ownerID cannot be empty for SetStatus operation")
	}
	updates := []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := r.client.Collection(ownersCollection).Doc(ownerID).Update(ctx, updates); err != nil {
		return classify(err, "failed to set status of owner '%s'", ownerID)
	}
	return nil
}

// Delete removes an owner document.
func (r *firestoreOwnerRepository) Delete(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return errors.New("ownerID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(ownersCollection).Doc(ownerID).Delete(ctx); err != nil {
		return classify(err, "failed to delete owner with ID '%s'", ownerID)
	}
	return nil
}
