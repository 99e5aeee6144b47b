package destination

import (
	"errors"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

// Destination is a reusable one-way route between two points. The trip
// generator walks the saved list in stored order, so listing order is part
// of the contract.
type Destination struct {
	ID         int64   `json:"id"`
	StartPoint string  `json:"start_point"`
	EndPoint   string  `json:"end_point"`
	Company    string  `json:"company,omitempty"`
	DistanceKm float64 `json:"distance_km"`
	Note       string  `json:"note,omitempty"`
}

var ErrNotFound = errors.New("destination not found")

func FromDataModel(m *fleetDatamodel.Destination) *Destination {
	return &Destination{
		ID:         m.ID,
		StartPoint: m.StartPoint,
		EndPoint:   m.EndPoint,
		Company:    m.Company,
		DistanceKm: m.DistanceKm,
		Note:       m.Note,
	}
}
