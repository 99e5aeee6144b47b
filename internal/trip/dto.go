package trip

import (
	"github.com/vilkasoft/backoffice/internal/core/common/validation"
)

// GenerateLogDTO selects the vehicle and month to build a logbook for.
type GenerateLogDTO struct {
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	Registration string `json:"registration"`
}

func (d GenerateLogDTO) Validate() error {
	if err := validation.ValidateMonth(d.Month); err != nil {
		return err
	}
	if err := validation.ValidateYear(d.Year); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("registration", d.Registration).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// SaveLogDTO persists a previously generated logbook, replacing whatever the
// vehicle already has for that month.
type SaveLogDTO struct {
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	Registration string    `json:"registration"`
	Legs         []TripLeg `json:"legs"`
}

func (d SaveLogDTO) Validate() error {
	g := GenerateLogDTO{Month: d.Month, Year: d.Year, Registration: d.Registration}
	return g.Validate()
}

// GenerateLogResponse is the preview returned by the generator: the legs plus
// the budget they were carved from.
type GenerateLogResponse struct {
	Registration string    `json:"registration"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	FuelLiters   float64   `json:"fuel_liters"`
	TotalKm      float64   `json:"total_km"`
	Legs         []TripLeg `json:"legs"`
}
