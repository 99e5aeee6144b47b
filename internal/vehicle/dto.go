package vehicle

import (
	"time"

	"github.com/vilkasoft/backoffice/internal"
	"github.com/vilkasoft/backoffice/internal/core/common/validation"
)

type CreateVehicleDTO struct {
	Registration string  `json:"registration"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Consumption  float64 `json:"consumption"`
}

func (d CreateVehicleDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("registration", d.Registration).Required().MaxLength(16)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateVehicleDTO struct {
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Consumption float64 `json:"consumption"`
}

type CreateFuelRecordDTO struct {
	Date   string  `json:"date"`
	Liters float64 `json:"liters"`
}

// Validate requires the fixed YYYY-MM-DD date format; monthly fuel sums match
// on a substring of that string.
func (d CreateFuelRecordDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("date", d.Date).Required()
	v.Field("liters", d.Liters).Required().MinFloat(0.1, internal.ErrCodeValidationFailed)
	if err := v.Validate(); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", d.Date); err != nil {
		return internal.NewValidationFieldError("date", "date must use the YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	return nil
}
