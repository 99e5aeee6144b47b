package postgres

import (
	"github.com/vilkasoft/backoffice/internal/trip"
	"gorm.io/gorm"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

// TripLogRepository stores generated logbooks per vehicle month.
type TripLogRepository struct {
	db *gorm.DB
}

func NewTripLogRepository(db *gorm.DB) trip.RepositoryAPI {
	return &TripLogRepository{db: db}
}

// ReplaceLog swaps the vehicle's stored month wholesale inside one
// transaction, so a failed save never leaves a half-written logbook.
func (r *TripLogRepository) ReplaceLog(registration string, month, year int, legs []*fleetDatamodel.TripLeg) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("registration = ? AND month = ? AND year = ?", registration, month, year).
			Delete(&fleetDatamodel.TripLeg{}).Error; err != nil {
			return err
		}
		for _, leg := range legs {
			if err := tx.Create(leg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TripLogRepository) GetLog(registration string, month, year int) ([]*fleetDatamodel.TripLeg, error) {
	var legs []*fleetDatamodel.TripLeg
	err := r.db.
		Where("registration = ? AND month = ? AND year = ?", registration, month, year).
		Order("id ASC").
		Find(&legs).Error
	return legs, err
}

func (r *TripLogRepository) DeleteLog(registration string, month, year int) error {
	return r.db.
		Where("registration = ? AND month = ? AND year = ?", registration, month, year).
		Delete(&fleetDatamodel.TripLeg{}).Error
}
