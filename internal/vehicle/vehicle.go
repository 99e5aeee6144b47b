package vehicle

import (
	"errors"
	"time"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

type Vehicle struct {
	ID           int64     `json:"id"`
	Registration string    `json:"registration"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Consumption  float64   `json:"consumption"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasConsumptionRate reports whether distance can be derived from fuel for
// this vehicle at all.
func (v *Vehicle) HasConsumptionRate() bool {
	return v.Consumption > 0
}

type FuelRecord struct {
	ID           int64   `json:"id"`
	Registration string  `json:"registration"`
	Date         string  `json:"date"`
	Liters       float64 `json:"liters"`
}

var (
	ErrNotFound          = errors.New("vehicle not found")
	ErrRegistrationTaken = errors.New("registration already exists")
)

func ToDataModel(v *Vehicle) *fleetDatamodel.Vehicle {
	return &fleetDatamodel.Vehicle{
		ID:           v.ID,
		Registration: v.Registration,
		Make:         v.Make,
		Model:        v.Model,
		Consumption:  v.Consumption,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromDataModel(v *fleetDatamodel.Vehicle) *Vehicle {
	return &Vehicle{
		ID:           v.ID,
		Registration: v.Registration,
		Make:         v.Make,
		Model:        v.Model,
		Consumption:  v.Consumption,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func fuelFromDataModel(f *fleetDatamodel.FuelRecord) FuelRecord {
	return FuelRecord{
		ID:           f.ID,
		Registration: f.Registration,
		Date:         f.Date,
		Liters:       f.Liters,
	}
}
