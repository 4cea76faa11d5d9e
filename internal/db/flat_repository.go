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

const flatsCollection = "flats"

// firestoreFlatRepository implements the FlatRepository interface using Firestore.
type firestoreFlatRepository struct {
	client *firestore.Client
}

// NewFirestoreFlatRepository creates a new instance of firestoreFlatRepository.
func NewFirestoreFlatRepository(client *firestore.Client) FlatRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for FlatRepository.")
	}
	return &firestoreFlatRepository{client: client}
}

// Create adds a new flat document with an auto-generated ID.
// CreatedAt and UpdatedAt are handled by the serverTimestamp tags.
func (r *firestoreFlatRepository) Create(ctx context.Context, flat *models.Flat) (string, error) {
	docRef := r.client.Collection(flatsCollection).NewDoc()
	flat.ID = docRef.ID
	if _, err := docRef.Create(ctx, flat); err != nil {
		return "", classify(err, "failed to create flat")
	}
	return docRef.ID, nil
}

// GetByID retrieves a flat document by its ID.
func (r *firestoreFlatRepository) GetByID(ctx context.Context, flatID string) (*models.Flat, error) {
	if flatID == "" {
		return nil, errors.New("flatID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(flatsCollection).Doc(flatID).Get(ctx)
	if err != nil {
		return nil, classify(err, "failed to get flat with ID '%s'", flatID)
	}

	var flat models.Flat
	if err := docSnap.DataTo(&flat); err != nil {
		return nil, fmt.Errorf("failed to decode flat data for ID '%s': %w", flatID, err)
	}
	flat.ID = docSnap.Ref.ID

	return &flat, nil
}

// GetByNumber retrieves the flat with the given unit number, or ErrNotFound.
// Flat numbers are unique across the collection.
func (r *firestoreFlatRepository) GetByNumber(ctx context.Context, flatNumber string) (*models.Flat, error) {
	iter := r.client.Collection(flatsCollection).
		Where("flatNumber", "==", flatNumber).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("flat with number '%s': %w", flatNumber, ErrNotFound)
	}
	if err != nil {
		return nil, classify(err, "failed to query flat by number '%s'", flatNumber)
	}

	var flat models.Flat
	if err := doc.DataTo(&flat); err != nil {
		return nil, fmt.Errorf("failed to decode flat data for number '%s': %w", flatNumber, err)
	}
	flat.ID = doc.Ref.ID
	return &flat, nil
}

// GetAll retrieves every flat, ordered by unit number.
func (r *firestoreFlatRepository) GetAll(ctx context.Context) ([]*models.Flat, error) {
	iter := r.client.Collection(flatsCollection).OrderBy("flatNumber", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var flats []*models.Flat
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify(err, "failed to iterate flats")
		}

		var flat models.Flat
		if err := doc.DataTo(&flat); err != nil {
			log.Printf("Error decoding flat data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		flat.ID = doc.Ref.ID
		flats = append(flats, &flat)
	}
	return flats, nil
}

// Update overwrites the mutable fields of a flat using Set with MergeAll.
// UpdatedAt is handled by the serverTimestamp tag.
func (r *firestoreFlatRepository) Update(ctx context.Context, flat *models.Flat) error {
	if flat.ID == "" {
		return errors.New("flat ID cannot be empty for Update operation")
	}
	if _, err := r.client.Collection(flatsCollection).Doc(flat.ID).Set(ctx, flat, firestore.MergeAll); err != nil {
		return classify(err, "failed to update flat with ID '%s'", flat.ID)
	}
	return nil
}

// SetOwnership updates only the ownership fields of the flat document and
// forces status to Occupied in the same write.
func (r *firestoreFlatRepository) SetOwnership(ctx context.Context, flatID, ownerID, previousOwnerID string) error {
	if flatID == "" {
		return errors.New("flatID cannot be empty for SetOwnership operation")
	}
	updates := []firestore.Update{
		{Path: "ownerId", Value: ownerID},
		{Path: "previousOwnerId", Value: previousOwnerID},
		{Path: "status", Value: models.FlatOccupied},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := r.client.Collection(flatsCollection).Doc(flatID).Update(ctx, updates); err != nil {
		return classify(err, "failed to set ownership of flat '%s'", flatID)
	}
	return nil
}

// ClearOwnership empties the current-owner reference and resets the flat to
// Available. The previous-owner reference is left for history.
func (r *firestoreFlatRepository) ClearOwnership(ctx context.Context, flatID string) error {
	if flatID == "" {
		return errors.New("flatID cannot be empty for ClearOwnership operation")
	}
	updates := []firestore.Update{
		{Path: "ownerId", Value: ""},
		{Path: "status", Value: models.FlatAvailable},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := r.client.Collection(flatsCollection).Doc(flatID).Update(ctx, updates); err != nil {
		return classify(err, "failed to clear ownership of flat '%s'", flatID)
	}
	return nil
}

// Delete removes a flat document.
func (r *firestoreFlatRepository) Delete(ctx context.Context, flatID string) error {
	if flatID == "" {
		return errors.New("flatID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(flatsCollection).Doc(flatID).Delete(ctx); err != nil {
		return classify(err, "failed to delete flat with ID '%s'", flatID)
	}
	return nil
}
