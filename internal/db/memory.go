package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/ukydev/vehicle-viewer/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryVehicleCollection keeps vehicles in process memory. Ids have the same shape as
// the Mongo ones so clients cannot tell the stores apart.
type MemoryVehicleCollection struct {
	mu       sync.RWMutex
	vehicles []models.Vehicle
}

func NewMemoryVehicleCollection() *MemoryVehicleCollection {
	return &MemoryVehicleCollection{}
}

func (c *MemoryVehicleCollection) InsertVehicle(ctx context.Context, v models.NewVehicle) (models.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return models.Vehicle{}, err
	}

	vehicle := v.WithID(models.VehicleID(primitive.NewObjectID().Hex()))

	c.mu.Lock()
	c.vehicles = append(c.vehicles, vehicle)
	c.mu.Unlock()
	return vehicle, nil
}

func (c *MemoryVehicleCollection) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out, nil
}

func (c *MemoryVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !primitive.IsValidObjectID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.vehicles {
		if string(v.ID) == id {
			found := v
			return &found, nil
		}
	}
	return nil, ErrVehicleNotFound
}
