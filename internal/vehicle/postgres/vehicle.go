package postgres

import (
	"fmt"

	"github.com/vilkasoft/backoffice/internal/vehicle"
	"gorm.io/gorm"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

// VehicleRepository implements vehicle.RepositoryAPI using GORM. It also
// serves the trip generator's vehicle-registry and fuel-ledger boundaries.
type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) vehicle.RepositoryAPI {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) GetAll() ([]*fleetDatamodel.Vehicle, error) {
	var vehicles []*fleetDatamodel.Vehicle
	err := r.db.Order("registration ASC").Find(&vehicles).Error
	return vehicles, err
}

func (r *VehicleRepository) GetByID(id int64) (*fleetDatamodel.Vehicle, error) {
	var v fleetDatamodel.Vehicle
	err := r.db.Where("id = ?", id).First(&v).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) GetByRegistration(registration string) (*fleetDatamodel.Vehicle, error) {
	var v fleetDatamodel.Vehicle
	err := r.db.Where("registration = ?", registration).First(&v).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) Create(v *fleetDatamodel.Vehicle) error {
	return r.db.Create(v).Error
}

func (r *VehicleRepository) Update(v *fleetDatamodel.Vehicle) error {
	return r.db.Save(v).Error
}

func (r *VehicleRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&fleetDatamodel.Vehicle{}).Error
}

func (r *VehicleRepository) CreateFuelRecord(record *fleetDatamodel.FuelRecord) error {
	return r.db.Create(record).Error
}

func (r *VehicleRepository) GetFuelRecords(registration string) ([]*fleetDatamodel.FuelRecord, error) {
	var records []*fleetDatamodel.FuelRecord
	err := r.db.Where("registration = ?", registration).Order("date ASC").Find(&records).Error
	return records, err
}

// SumLitersForMonth matches fuel records on the fixed-width YYYY-MM- date
// prefix rather than a parsed date range.
func (r *VehicleRepository) SumLitersForMonth(registration string, month, year int) (float64, error) {
	var total float64
	prefix := fmt.Sprintf("%04d-%02d-%%", year, month)
	err := r.db.Model(&fleetDatamodel.FuelRecord{}).
		Where("registration = ? AND date LIKE ?", registration, prefix).
		Select("COALESCE(SUM(liters), 0)").
		Scan(&total).Error
	return total, err
}
