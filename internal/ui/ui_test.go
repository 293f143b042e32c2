package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/vehicle-viewer/internal/models"
)

// MockVehicleLister is a mock implementation of api.VehicleLister
type MockVehicleLister struct {
	mock.Mock
}

func (m *MockVehicleLister) ListVehicles(ctx context.Context) models.ListResult {
	args := m.Called(ctx)
	return args.Get(0).(models.ListResult)
}

func fleet(n int) []models.Vehicle {
	vehicles := make([]models.Vehicle, 0, n)
	for i := 1; i <= n; i++ {
		vehicles = append(vehicles, models.Vehicle{
			ID:       models.VehicleID(fmt.Sprint(i)),
			Name:     fmt.Sprintf("Vehicle %d", i),
			Type:     "bus",
			Capacity: float64(10 * i),
		})
	}
	return vehicles
}

func loadScreen(t *testing.T, result models.ListResult) (*VehiclesScreen, *MockVehicleLister) {
	t.Helper()
	lister := new(MockVehicleLister)
	lister.On("ListVehicles", mock.Anything).Return(result).Once()
	logger, _ := test.NewNullLogger()

	screen := NewVehiclesScreen(lister, logger)
	screen.Mount(context.Background())

	select {
	case <-screen.Done():
	case <-time.After(time.Second):
		t.Fatal("screen did not finish loading")
	}
	return screen, lister
}

func render(t *testing.T, screen *VehiclesScreen) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, screen.Render(&buf))
	return buf.String()
}

func TestRenderVehicleCard(t *testing.T) {
	var buf bytes.Buffer
	err := RenderVehicleCard(&buf, models.Vehicle{ID: "7", Name: "Night Bus", Type: "double-decker", Capacity: 85})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<h2 class="vehicle-name">Night Bus</h2>`)
	assert.Contains(t, out, "Type: double-decker")
	assert.Contains(t, out, "Capacity: 85")
	assert.Contains(t, out, `data-id="7"`)
}

func TestRenderVehicleCard_FractionalCapacity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderVehicleCard(&buf, models.Vehicle{ID: "2", Name: "Cargo bike", Type: "bike", Capacity: 2.5}))
	assert.Contains(t, buf.String(), "Capacity: 2.5")

	buf.Reset()
	require.NoError(t, RenderVehicleCard(&buf, models.Vehicle{ID: "3", Name: "Coach", Type: "bus", Capacity: 55}))
	assert.Contains(t, buf.String(), "Capacity: 55<")
}

func TestRenderVehicleCard_EscapesFields(t *testing.T) {
	var buf bytes.Buffer
	err := RenderVehicleCard(&buf, models.Vehicle{ID: "1", Name: "<script>alert(1)</script>", Type: "a&b", Capacity: 1})
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
	assert.Contains(t, buf.String(), "Type: a&amp;b")
}

func TestVehiclesScreen_StartsLoading(t *testing.T) {
	lister := new(MockVehicleLister)
	logger, _ := test.NewNullLogger()
	screen := NewVehiclesScreen(lister, logger)

	assert.Equal(t, StateLoading, screen.State())
	out := render(t, screen)
	assert.Contains(t, out, `class="spinner"`)
	assert.NotContains(t, out, "vehicle-list")
	lister.AssertNotCalled(t, "ListVehicles", mock.Anything)
}

func TestVehiclesScreen_RendersOneCardPerVehicle(t *testing.T) {
	for _, n := range []int{1, 3, 25} {
		t.Run(fmt.Sprintf("%d vehicles", n), func(t *testing.T) {
			screen, lister := loadScreen(t, models.ListSucceeded(fleet(n)))

			assert.Equal(t, StateLoaded, screen.State())
			assert.Equal(t, models.OutcomeSuccess, screen.Outcome())
			out := render(t, screen)
			assert.Equal(t, n, strings.Count(out, `class="vehicle-card"`))
			assert.NotContains(t, out, "spinner")
			lister.AssertExpectations(t)
		})
	}
}

func TestVehiclesScreen_CardsMatchRecordsInOrder(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: "a", Name: "Ferry", Type: "boat", Capacity: 300},
		{ID: "b", Name: "Cable car", Type: "gondola", Capacity: 8},
	}
	screen, _ := loadScreen(t, models.ListSucceeded(vehicles))
	out := render(t, screen)

	ferry := strings.Index(out, "Ferry")
	cable := strings.Index(out, "Cable car")
	require.NotEqual(t, -1, ferry)
	require.NotEqual(t, -1, cable)
	assert.Less(t, ferry, cable)

	for _, v := range vehicles {
		var card bytes.Buffer
		require.NoError(t, RenderVehicleCard(&card, v))
		assert.Contains(t, out, card.String())
	}
}

func TestVehiclesScreen_EmptyListing(t *testing.T) {
	screen, _ := loadScreen(t, models.ListSucceeded(nil))

	assert.Equal(t, StateLoaded, screen.State())
	assert.Equal(t, models.OutcomeEmpty, screen.Outcome())
	out := render(t, screen)
	assert.Contains(t, out, `<ul class="vehicle-list">`)
	assert.Zero(t, strings.Count(out, `class="vehicle-card"`))
	assert.NotContains(t, out, "spinner")
}

func TestVehiclesScreen_FailureLooksLikeEmpty(t *testing.T) {
	failed, _ := loadScreen(t, models.ListFailed(errors.New("network unreachable")))
	empty, _ := loadScreen(t, models.ListSucceeded(nil))

	assert.Equal(t, StateLoaded, failed.State())
	assert.Empty(t, failed.Vehicles())
	assert.Equal(t, render(t, empty), render(t, failed))

	// The tag still tells the two apart for callers that care.
	assert.Equal(t, models.OutcomeFailure, failed.Outcome())
	assert.Equal(t, models.OutcomeEmpty, empty.Outcome())
}

func TestVehiclesScreen_MountFetchesOnce(t *testing.T) {
	lister := new(MockVehicleLister)
	lister.On("ListVehicles", mock.Anything).Return(models.ListSucceeded(fleet(2))).Once()
	logger, _ := test.NewNullLogger()

	screen := NewVehiclesScreen(lister, logger)
	screen.Mount(context.Background())
	screen.Mount(context.Background())
	<-screen.Done()
	screen.Mount(context.Background())

	lister.AssertNumberOfCalls(t, "ListVehicles", 1)
}

func TestHomeScreen_LinksToVehicles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HomeScreen{VehiclesURL: "/vehicles"}.Render(&buf))
	assert.Contains(t, buf.String(), `href="/vehicles"`)
}

func TestLayout_MarksActiveLink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHeader(&buf, Page{
		Title: "Vehicles",
		Nav: []NavLink{
			{Name: "Home", URL: "/"},
			{Name: "Vehicles", URL: "/vehicles", Active: true},
		},
	}))
	require.NoError(t, RenderFooter(&buf))

	out := buf.String()
	assert.Contains(t, out, `<title>Vehicles</title>`)
	assert.Contains(t, out, `<a href="/vehicles" class="active">Vehicles</a>`)
	assert.Contains(t, out, `<a href="/">Home</a>`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</html>"))
}
