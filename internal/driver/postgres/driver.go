package postgres

import (
	"github.com/vilkasoft/backoffice/internal/driver"
	"gorm.io/gorm"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) driver.RepositoryAPI {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) GetAll() ([]*fleetDatamodel.Driver, error) {
	var drivers []*fleetDatamodel.Driver
	err := r.db.Order("last_name ASC, first_name ASC").Find(&drivers).Error
	return drivers, err
}

func (r *DriverRepository) GetByID(id int64) (*fleetDatamodel.Driver, error) {
	var d fleetDatamodel.Driver
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DriverRepository) Create(d *fleetDatamodel.Driver) error {
	return r.db.Create(d).Error
}

func (r *DriverRepository) Update(d *fleetDatamodel.Driver) error {
	return r.db.Save(d).Error
}

func (r *DriverRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&fleetDatamodel.Driver{}).Error
}
