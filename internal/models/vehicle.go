package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// VehicleID identifies a vehicle within a listing. Backends hand it out either as a
// JSON number or as a string (e.g. a Mongo ObjectID hex), so both decode into the same
// textual form.
type VehicleID string

// UnmarshalJSON accepts a JSON string or a JSON number.
func (id *VehicleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = VehicleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("vehicle id must be a string or a number: %w", err)
	}
	*id = VehicleID(n.String())
	return nil
}

func (id VehicleID) String() string {
	return string(id)
}

// Vehicle is a read-only snapshot of a vehicle as served by the vehicles API.
type Vehicle struct {
	ID       VehicleID `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Capacity float64   `json:"capacity"`
}

// NewVehicle is the partial record sent when creating a vehicle; the server assigns the id.
type NewVehicle struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity float64 `json:"capacity"`
}

// WithID returns the full record for n once the server has assigned id.
func (n NewVehicle) WithID(id VehicleID) Vehicle {
	return Vehicle{ID: id, Name: n.Name, Type: n.Type, Capacity: n.Capacity}
}
