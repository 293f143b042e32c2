package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/vehicle-viewer/internal/api"
	"github.com/ukydev/vehicle-viewer/internal/config"
	"github.com/ukydev/vehicle-viewer/internal/db"
	"github.com/ukydev/vehicle-viewer/internal/handlers"
	"github.com/ukydev/vehicle-viewer/internal/models"
)

type MockCreator struct {
	mock.Mock
}

func (m *MockCreator) CreateVehicle(ctx context.Context, v models.NewVehicle) models.CreateResult {
	args := m.Called(ctx, v)
	return args.Get(0).(models.CreateResult)
}

func TestRandomVehicle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 1; i <= 50; i++ {
		v := randomVehicle(rng, i)
		bounds, ok := fleetTypes[v.Type]
		require.True(t, ok, "unknown type %q", v.Type)
		assert.GreaterOrEqual(t, v.Capacity, float64(bounds[0]))
		assert.LessOrEqual(t, v.Capacity, float64(bounds[1]))
		assert.Equal(t, float64(int(v.Capacity)), v.Capacity)
		assert.NotEmpty(t, v.Name)
	}
}

func TestSeed_SkipsFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	creator := new(MockCreator)
	ok := models.Vehicle{ID: "1", Name: "Volvo bus 1", Type: "bus", Capacity: 40}
	creator.On("CreateVehicle", mock.Anything, mock.Anything).Return(models.CreateSucceeded(ok)).Once()
	creator.On("CreateVehicle", mock.Anything, mock.Anything).Return(models.CreateFailed(errors.New("boom"))).Once()
	creator.On("CreateVehicle", mock.Anything, mock.Anything).Return(models.CreateSucceeded(ok)).Once()

	created := seed(context.Background(), creator, 3, rand.New(rand.NewSource(1)), logger)

	assert.Len(t, created, 2)
	creator.AssertNumberOfCalls(t, "CreateVehicle", 3)
	assert.Equal(t, 2, hook.LastEntry().Data["created"])
}

func TestSeed_StopsOnCanceledContext(t *testing.T) {
	logger, _ := test.NewNullLogger()
	creator := new(MockCreator)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	created := seed(ctx, creator, 5, rand.New(rand.NewSource(1)), logger)

	assert.Empty(t, created)
	creator.AssertNotCalled(t, "CreateVehicle", mock.Anything, mock.Anything)
}

func TestSeed_NegativeSizeCreatesNothing(t *testing.T) {
	logger, _ := test.NewNullLogger()
	creator := new(MockCreator)

	created := seed(context.Background(), creator, -1, rand.New(rand.NewSource(1)), logger)

	assert.Empty(t, created)
	creator.AssertNotCalled(t, "CreateVehicle", mock.Anything, mock.Anything)
}

func TestSeed_AgainstVehiclesAPI(t *testing.T) {
	logger, _ := test.NewNullLogger()
	store := db.NewMemoryVehicleCollection()
	r := mux.NewRouter()
	handlers.NewVehicleHandler(store, nil, logger).Register(r.PathPrefix("/api").Subrouter())
	server := httptest.NewServer(r)
	defer server.Close()

	client := api.NewClient(&config.APIConfig{BaseURL: server.URL + "/api", Timeout: time.Second}, logger)
	created := seed(context.Background(), client, 4, rand.New(rand.NewSource(7)), logger)
	require.Len(t, created, 4)

	listed := client.ListVehicles(context.Background())
	assert.Equal(t, models.OutcomeSuccess, listed.Outcome)
	assert.Equal(t, created, listed.Vehicles)
}

func TestSeed_APIDown(t *testing.T) {
	logger, _ := test.NewNullLogger()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := api.NewClient(&config.APIConfig{BaseURL: server.URL, Timeout: time.Second}, logger)
	created := seed(context.Background(), client, 2, rand.New(rand.NewSource(1)), logger)

	assert.Empty(t, created)
}
