package trip

import (
	"errors"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

// TripLeg is one directional trip between two points on one date, attributed
// to one driver. Legs come in outbound/return pairs sharing a date.
type TripLeg struct {
	Date         string `json:"date"`
	Driver       string `json:"driver"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Company      string `json:"company"`
	DistanceKm   int    `json:"distance_km"`
	Registration string `json:"registration"`
	MonthLabel   string `json:"month_label"`
	Year         int    `json:"year"`
}

var (
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrNoConsumption    = errors.New("vehicle has no fuel consumption rate")
	ErrInsufficientFuel = errors.New("insufficient fuel for the selected month")
	ErrNoDrivers        = errors.New("no drivers available")
	ErrNoDestinations   = errors.New("no destinations available")
)

func toDataModel(leg TripLeg, month int) *fleetDatamodel.TripLeg {
	return &fleetDatamodel.TripLeg{
		Date:         leg.Date,
		Driver:       leg.Driver,
		Origin:       leg.Origin,
		Destination:  leg.Destination,
		Company:      leg.Company,
		DistanceKm:   leg.DistanceKm,
		Registration: leg.Registration,
		MonthLabel:   leg.MonthLabel,
		Month:        month,
		Year:         leg.Year,
	}
}

func fromDataModel(m *fleetDatamodel.TripLeg) TripLeg {
	return TripLeg{
		Date:         m.Date,
		Driver:       m.Driver,
		Origin:       m.Origin,
		Destination:  m.Destination,
		Company:      m.Company,
		DistanceKm:   m.DistanceKm,
		Registration: m.Registration,
		MonthLabel:   m.MonthLabel,
		Year:         m.Year,
	}
}
