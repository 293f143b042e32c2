package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/vehicle-viewer/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB at uri and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo URI is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// vehicleDocument is the stored form of a vehicle.
type vehicleDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Capacity  float64            `bson:"capacity"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d vehicleDocument) toModel() models.Vehicle {
	return models.Vehicle{
		ID:       models.VehicleID(d.ID.Hex()),
		Name:     d.Name,
		Type:     d.Type,
		Capacity: d.Capacity,
	}
}

// MongoVehicleCollection implements VehicleCollection for MongoDB.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle record into the collection.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, v models.NewVehicle) (models.Vehicle, error) {
	if c.Collection == nil {
		return models.Vehicle{}, fmt.Errorf("mongo collection is nil")
	}

	doc := vehicleDocument{
		ID:        primitive.NewObjectID(),
		Name:      v.Name,
		Type:      v.Type,
		Capacity:  v.Capacity,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := c.Collection.InsertOne(ctx, doc); err != nil {
		return models.Vehicle{}, fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return doc.toModel(), nil
}

// FindVehicles returns every vehicle ordered by id, which follows insertion time.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	cursor, err := c.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []vehicleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}

	vehicles := make([]models.Vehicle, 0, len(docs))
	for _, d := range docs {
		vehicles = append(vehicles, d.toModel())
	}
	return vehicles, nil
}

// FindVehicleByID finds a vehicle by its ID.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	var doc vehicleDocument
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	vehicle := doc.toModel()
	return &vehicle, nil
}

// DeleteAll deletes all vehicle records from the collection.
func (c *MongoVehicleCollection) DeleteAll(ctx context.Context) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.DeleteMany(ctx, bson.M{})
	return err
}
