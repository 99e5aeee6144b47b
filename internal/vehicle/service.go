package vehicle

import (
	"log/slog"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

type RepositoryAPI interface {
	GetAll() ([]*fleetDatamodel.Vehicle, error)
	GetByID(id int64) (*fleetDatamodel.Vehicle, error)
	GetByRegistration(registration string) (*fleetDatamodel.Vehicle, error)
	Create(vehicle *fleetDatamodel.Vehicle) error
	Update(vehicle *fleetDatamodel.Vehicle) error
	Delete(id int64) error
	CreateFuelRecord(record *fleetDatamodel.FuelRecord) error
	GetFuelRecords(registration string) ([]*fleetDatamodel.FuelRecord, error)
	SumLitersForMonth(registration string, month, year int) (float64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllVehicles() ([]*Vehicle, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get vehicles from repository", "error", err)
		return nil, err
	}

	vehicles := make([]*Vehicle, 0, len(models))
	for _, m := range models {
		vehicles = append(vehicles, FromDataModel(m))
	}
	return vehicles, nil
}

func (s *Service) GetVehicle(id int64) (*Vehicle, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get vehicle", "vehicle_id", id, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return FromDataModel(m), nil
}

func (s *Service) CreateVehicle(dto *CreateVehicleDTO) (*Vehicle, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByRegistration(dto.Registration)
	if err != nil {
		s.logger.Error("failed to check registration", "registration", dto.Registration, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrRegistrationTaken
	}

	m := &fleetDatamodel.Vehicle{
		Registration: dto.Registration,
		Make:         dto.Make,
		Model:        dto.Model,
		Consumption:  dto.Consumption,
	}
	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to create vehicle", "registration", dto.Registration, "error", err)
		return nil, err
	}

	s.logger.Info("vehicle created", "vehicle_id", m.ID, "registration", m.Registration)
	return FromDataModel(m), nil
}

func (s *Service) UpdateVehicle(id int64, dto *UpdateVehicleDTO) (*Vehicle, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get vehicle", "vehicle_id", id, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}

	m.Make = dto.Make
	m.Model = dto.Model
	m.Consumption = dto.Consumption
	if err := s.repo.Update(m); err != nil {
		s.logger.Error("failed to update vehicle", "vehicle_id", id, "error", err)
		return nil, err
	}
	return FromDataModel(m), nil
}

func (s *Service) DeleteVehicle(id int64) error {
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get vehicle", "vehicle_id", id, "error", err)
		return err
	}
	if m == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// AddFuelRecord appends one tanking entry to the vehicle's fuel ledger.
func (s *Service) AddFuelRecord(vehicleID int64, dto *CreateFuelRecordDTO) (*FuelRecord, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(vehicleID)
	if err != nil {
		s.logger.Error("failed to get vehicle", "vehicle_id", vehicleID, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}

	record := &fleetDatamodel.FuelRecord{
		Registration: m.Registration,
		Date:         dto.Date,
		Liters:       dto.Liters,
	}
	if err := s.repo.CreateFuelRecord(record); err != nil {
		s.logger.Error("failed to create fuel record", "registration", m.Registration, "error", err)
		return nil, err
	}

	result := fuelFromDataModel(record)
	return &result, nil
}

func (s *Service) GetFuelRecords(vehicleID int64) ([]FuelRecord, error) {
	m, err := s.repo.GetByID(vehicleID)
	if err != nil {
		s.logger.Error("failed to get vehicle", "vehicle_id", vehicleID, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}

	models, err := s.repo.GetFuelRecords(m.Registration)
	if err != nil {
		s.logger.Error("failed to get fuel records", "registration", m.Registration, "error", err)
		return nil, err
	}

	records := make([]FuelRecord, 0, len(models))
	for _, r := range models {
		records = append(records, fuelFromDataModel(r))
	}
	return records, nil
}
