package ui

import (
	"io"

	"github.com/ukydev/vehicle-viewer/internal/models"
)

// RenderVehicleCard writes the card for v: its name, type and capacity.
func RenderVehicleCard(w io.Writer, v models.Vehicle) error {
	return templates.ExecuteTemplate(w, "vehicle_card", v)
}
