package destination

import "github.com/vilkasoft/backoffice/internal/core/common/validation"

type DestinationDTO struct {
	StartPoint string  `json:"start_point"`
	EndPoint   string  `json:"end_point"`
	Company    string  `json:"company"`
	DistanceKm float64 `json:"distance_km"`
	Note       string  `json:"note"`
}

func (d DestinationDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("start_point", d.StartPoint).Required().MaxLength(200)
	v.Field("end_point", d.EndPoint).Required().MaxLength(200)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateDistance(d.DistanceKm); err != nil {
		return err
	}
	return nil
}
