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

const vehiclesCollection = "vehicles"

// firestoreVehicleRepository implements the VehicleRepository interface using Firestore.
type firestoreVehicleRepository struct {
	client *firestore.Client
}

// NewFirestoreVehicleRepository creates a new instance of firestoreVehicleRepository.
func NewFirestoreVehicleRepository(client *firestore.Client) VehicleRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for VehicleRepository.")
	}
	return &firestoreVehicleRepository{client: client}
}

// Create adds a new vehicle document with an auto-generated ID.
func (r *firestoreVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) (string, error) {
	docRef := r.client.Collection(vehiclesCollection).NewDoc()
	vehicle.ID = docRef.ID
	if _, err := docRef.Create(ctx, vehicle); err != nil {
		return "", classify(err, "failed to create vehicle")
	}
	return docRef.ID, nil
}

// GetByID retrieves a vehicle document by its ID.
func (r *firestoreVehicleRepository) GetByID(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	if vehicleID == "" {
		return nil, errors.New("vehicleID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(vehiclesCollection).Doc(vehicleID).Get(ctx)
	if err != nil {
		return nil, classify(err, "failed to get vehicle with ID '%s'", vehicleID)
	}

	var vehicle models.Vehicle
	if err := docSnap.DataTo(&vehicle); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle data for ID '%s': %w", vehicleID, err)
	}
	vehicle.ID = docSnap.Ref.ID

	return &vehicle, nil
}

// GetByNumber retrieves the vehicle with the given plate number, or
// ErrNotFound. Plate numbers are stored uppercase with whitespace stripped.
func (r *firestoreVehicleRepository) GetByNumber(ctx context.Context, vehicleNumber string) (*models.Vehicle, error) {
	iter := r.client.Collection(vehiclesCollection).
		Where("vehicleNumber", "==", vehicleNumber).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("vehicle with number '%s': %w", vehicleNumber, ErrNotFound)
	}
	if err != nil {
		return nil, classify(err, "failed to query vehicle by number '%s'", vehicleNumber)
	}

	var vehicle models.Vehicle
	if err := doc.DataTo(&vehicle); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle data for number '%s': %w", vehicleNumber, err)
	}
	vehicle.ID = doc.Ref.ID
	return &vehicle, nil
}

// GetAll retrieves every vehicle.
func (r *firestoreVehicleRepository) GetAll(ctx context.Context) ([]*models.Vehicle, error) {
	iter := r.client.Collection(vehiclesCollection).Documents(ctx)
	defer iter.Stop()
	return r.collect(iter, "failed to iterate vehicles")
}

// GetByOwnerID retrieves all vehicles registered to an owner.
func (r *firestoreVehicleRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Vehicle, error) {
	if ownerID == "" {
		return nil, errors.New("ownerID cannot be empty for GetByOwnerID operation")
	}
	iter := r.client.Collection(vehiclesCollection).Where("ownerId", "==", ownerID).Documents(ctx)
	defer iter.Stop()
	return r.collect(iter, fmt.Sprintf("failed to iterate vehicles for owner '%s'", ownerID))
}

func (r *firestoreVehicleRepository) collect(iter *firestore.DocumentIterator, errMsg string) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify(err, "%s", errMsg)
		}

		var vehicle models.Vehicle
		if err := doc.DataTo(&vehicle); err != nil {
			log.Printf("Error decoding vehicle data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		vehicle.ID = doc.Ref.ID
		vehicles = append(vehicles, &vehicle)
	}
	return vehicles, nil
}

// Update overwrites the mutable fields of a vehicle using Set with MergeAll.
func (r *firestoreVehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.ID == "" {
		return errors.New("vehicle ID cannot be empty for Update operation")
	}
	if _, err := r.client.Collection(vehiclesCollection).Doc(vehicle.ID).Set(ctx, vehicle, firestore.MergeAll); err != nil {
		return classify(err, "failed to update vehicle with ID '%s'", vehicle.ID)
	}
	return nil
}

// Delete removes a vehicle document.
func (r *firestoreVehicleRepository) Delete(ctx context.Context, vehicleID string) error {
	if vehicleID == "" {
		return errors.New("vehicleID cannot be empty for Delete operation")
	}
	if _, err := r.client.Collection(vehiclesCollection).Doc(vehicleID).Delete(ctx); err != nil {
		return classify(err, "failed to delete vehicle with ID '%s'", vehicleID)
	}
	return nil
}
