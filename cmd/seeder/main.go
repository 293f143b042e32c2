package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/vehicle-viewer/internal/api"
	"github.com/ukydev/vehicle-viewer/internal/config"
	"github.com/ukydev/vehicle-viewer/internal/logging"
	"github.com/ukydev/vehicle-viewer/internal/models"
)

// Vehicle types with a plausible seating range each.
var fleetTypes = map[string][2]int{
	"bus":     {30, 80},
	"coach":   {40, 60},
	"minibus": {12, 24},
	"van":     {2, 9},
	"car":     {2, 5},
}

var typeNames = []string{"bus", "coach", "minibus", "van", "car"}

var makes = map[string][]string{
	"bus":     {"Volvo", "Scania", "MAN", "Mercedes-Benz"},
	"coach":   {"Setra", "Neoplan", "Van Hool"},
	"minibus": {"Ford", "Iveco", "Mercedes-Benz"},
	"van":     {"Ford", "Renault", "Volkswagen", "Toyota"},
	"car":     {"Tesla", "Toyota", "Nissan", "Honda"},
}

type vehicleCreator interface {
	CreateVehicle(ctx context.Context, v models.NewVehicle) models.CreateResult
}

func randomVehicle(rng *rand.Rand, seq int) models.NewVehicle {
	vtype := typeNames[rng.Intn(len(typeNames))]
	bounds := fleetTypes[vtype]
	brand := makes[vtype][rng.Intn(len(makes[vtype]))]
	return models.NewVehicle{
		Name:     fmt.Sprintf("%s %s %d", brand, vtype, seq),
		Type:     vtype,
		Capacity: float64(bounds[0] + rng.Intn(bounds[1]-bounds[0]+1)),
	}
}

// seed creates up to n vehicles and returns the ones the API accepted.
func seed(ctx context.Context, creator vehicleCreator, n int, rng *rand.Rand, logger logrus.FieldLogger) []models.Vehicle {
	n = max(n, 0)
	created := make([]models.Vehicle, 0, n)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		res := creator.CreateVehicle(ctx, randomVehicle(rng, i+1))
		if res.Failed() {
			// the client has already logged the cause
			continue
		}
		created = append(created, *res.Vehicle)
	}
	logger.WithFields(logrus.Fields{
		"requested": n,
		"created":   len(created),
	}).Info("Vehicle creation completed")
	return created
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := logging.New(cfg.Log)

	logger.WithFields(logrus.Fields{
		"fleet_size": cfg.Fleet.Size,
		"api_url":    cfg.API.BaseURL,
	}).Info("Seeding fleet")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Fleet.Size+1)*cfg.API.Timeout)
	defer cancel()

	client := api.NewClient(cfg.API, logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if created := seed(ctx, client, cfg.Fleet.Size, rng, logger); len(created) == 0 && cfg.Fleet.Size > 0 {
		logger.Error("No vehicles created. Ensure the vehicles API is reachable.")
		os.Exit(1)
	}
}
