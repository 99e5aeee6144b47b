package postgres

import (
	"github.com/vilkasoft/backoffice/internal/destination"
	"gorm.io/gorm"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

type DestinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) destination.RepositoryAPI {
	return &DestinationRepository{db: db}
}

// GetAll keeps insertion order. The trip generator consumes the list as
// returned, so ordering here is deliberate.
func (r *DestinationRepository) GetAll() ([]*fleetDatamodel.Destination, error) {
	var destinations []*fleetDatamodel.Destination
	err := r.db.Order("id ASC").Find(&destinations).Error
	return destinations, err
}

func (r *DestinationRepository) GetByID(id int64) (*fleetDatamodel.Destination, error) {
	var d fleetDatamodel.Destination
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DestinationRepository) Create(d *fleetDatamodel.Destination) error {
	return r.db.Create(d).Error
}

func (r *DestinationRepository) Update(d *fleetDatamodel.Destination) error {
	return r.db.Save(d).Error
}

func (r *DestinationRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&fleetDatamodel.Destination{}).Error
}
