package driver

import (
	"errors"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

type Driver struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
}

func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}

var ErrNotFound = errors.New("driver not found")

func FromDataModel(m *fleetDatamodel.Driver) *Driver {
	return &Driver{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Role:      m.Role,
	}
}
