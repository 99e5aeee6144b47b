package driver

import "github.com/vilkasoft/backoffice/internal/core/common/validation"

type DriverDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (d DriverDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("first_name", d.FirstName).Required().MaxLength(100)
	v.Field("last_name", d.LastName).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
