package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ukydev/vehicle-viewer/internal/db"
	"github.com/ukydev/vehicle-viewer/internal/events"
	"github.com/ukydev/vehicle-viewer/internal/models"
)

const maxBodyBytes = 1 << 20

// VehicleHandler serves the vehicles API consumed by the front-end.
type VehicleHandler struct {
	vehicles  db.VehicleCollection
	publisher events.Publisher
	log       logrus.FieldLogger
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicles db.VehicleCollection, publisher events.Publisher, logger logrus.FieldLogger) *VehicleHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &VehicleHandler{
		vehicles:  vehicles,
		publisher: publisher,
		log:       logger,
	}
}

// Register mounts the vehicle routes on r.
func (h *VehicleHandler) Register(r *mux.Router) {
	r.HandleFunc("/vehicles", h.ListVehicles).Methods(http.MethodGet)
	r.HandleFunc("/vehicles", h.CreateVehicle).Methods(http.MethodPost)
	r.HandleFunc("/vehicles/{id}", h.GetVehicle).Methods(http.MethodGet)
}

// ListVehicles returns every vehicle as a JSON array
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindVehicles(r.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to list vehicles")
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	writeJSON(w, http.StatusOK, vehicles)
}

// CreateVehicle stores the posted partial vehicle and returns it with its id
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.NewVehicle
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	vehicle, err := h.vehicles.InsertVehicle(r.Context(), req)
	if err != nil {
		h.log.WithError(err).Error("Failed to create vehicle")
		http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
		return
	}

	h.log.WithFields(logrus.Fields{
		"vehicle_id": vehicle.ID,
		"name":       vehicle.Name,
		"type":       vehicle.Type,
	}).Info("Created vehicle")

	// The event is best effort; the vehicle is already stored.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
	defer cancel()
	if err := h.publisher.PublishVehicleCreated(ctx, vehicle); err != nil {
		h.log.WithError(err).WithField("vehicle_id", vehicle.ID).Warn("Failed to publish vehicle created event")
	}

	writeJSON(w, http.StatusCreated, vehicle)
}

// GetVehicle returns one vehicle by id
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), id)
	switch {
	case errors.Is(err, db.ErrInvalidID), errors.Is(err, db.ErrVehicleNotFound):
		http.Error(w, "Vehicle not found", http.StatusNotFound)
	case err != nil:
		h.log.WithError(err).WithField("vehicle_id", id).Error("Failed to get vehicle")
		http.Error(w, "Failed to get vehicle", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, vehicle)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
