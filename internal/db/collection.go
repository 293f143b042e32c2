package db

import (
	"context"
	"errors"

	"github.com/ukydev/vehicle-viewer/internal/models"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrInvalidID       = errors.New("invalid vehicle ID")
)

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	// InsertVehicle stores v and returns it with its assigned id.
	InsertVehicle(ctx context.Context, v models.NewVehicle) (models.Vehicle, error)
	// FindVehicles returns every vehicle in insertion order.
	FindVehicles(ctx context.Context) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
}
