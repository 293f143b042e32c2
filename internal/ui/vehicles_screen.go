package ui

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/vehicle-viewer/internal/api"
	"github.com/ukydev/vehicle-viewer/internal/models"
)

// ScreenState is the lifecycle of the vehicles screen.
type ScreenState string

const (
	StateLoading ScreenState = "loading"
	StateLoaded  ScreenState = "loaded"
)

// VehiclesScreen lists vehicles for one activation of the Vehicles route. It fetches
// exactly once, on Mount, and never refreshes.
type VehiclesScreen struct {
	lister api.VehicleLister
	log    logrus.FieldLogger

	mountOnce sync.Once
	done      chan struct{}

	mu     sync.RWMutex
	state  ScreenState
	result models.ListResult
}

// NewVehiclesScreen creates a screen in the loading state.
func NewVehiclesScreen(lister api.VehicleLister, logger logrus.FieldLogger) *VehiclesScreen {
	return &VehiclesScreen{
		lister: lister,
		log:    logger,
		done:   make(chan struct{}),
		state:  StateLoading,
		result: models.ListSucceeded(nil),
	}
}

// Mount starts the fetch in the background. Only the first call has any effect.
func (s *VehiclesScreen) Mount(ctx context.Context) {
	s.mountOnce.Do(func() {
		go s.fetchVehicles(ctx)
	})
}

func (s *VehiclesScreen) fetchVehicles(ctx context.Context) {
	defer close(s.done)

	result := s.lister.ListVehicles(ctx)

	s.mu.Lock()
	s.result = result
	s.state = StateLoaded
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"outcome": result.Outcome,
		"count":   len(result.Vehicles),
	}).Debug("Vehicles screen loaded")
}

// Done is closed once the screen has left the loading state.
func (s *VehiclesScreen) Done() <-chan struct{} {
	return s.done
}

// State reports whether the screen is still loading.
func (s *VehiclesScreen) State() ScreenState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Vehicles returns the loaded listing; it is empty while loading and after a failed fetch.
func (s *VehiclesScreen) Vehicles() []models.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result.Vehicles
}

// Outcome tags how the fetch ended. While loading it reports OutcomeEmpty.
func (s *VehiclesScreen) Outcome() models.Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result.Outcome
}

// Render writes the spinner while loading and the card list once loaded. An empty
// listing and a failed fetch render the same empty list.
func (s *VehiclesScreen) Render(w io.Writer) error {
	s.mu.RLock()
	state, vehicles := s.state, s.result.Vehicles
	s.mu.RUnlock()

	if state == StateLoading {
		return RenderLoading(w)
	}
	return templates.ExecuteTemplate(w, "vehicles_loaded", vehicles)
}

// RenderLoading writes the spinner shown while vehicles are being fetched.
func RenderLoading(w io.Writer) error {
	return templates.ExecuteTemplate(w, "vehicles_loading", nil)
}
