package driver

import (
	"log/slog"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

type RepositoryAPI interface {
	GetAll() ([]*fleetDatamodel.Driver, error)
	GetByID(id int64) (*fleetDatamodel.Driver, error)
	Create(driver *fleetDatamodel.Driver) error
	Update(driver *fleetDatamodel.Driver) error
	Delete(id int64) error
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

func (s *Service) GetAllDrivers() ([]*Driver, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get drivers from repository", "error", err)
		return nil, err
	}

	drivers := make([]*Driver, 0, len(models))
	for _, m := range models {
		drivers = append(drivers, FromDataModel(m))
	}
	return drivers, nil
}

func (s *Service) CreateDriver(dto *DriverDTO) (*Driver, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m := &fleetDatamodel.Driver{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Role:      dto.Role,
	}
	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to create driver", "error", err)
		return nil, err
	}

	s.logger.Info("driver created", "driver_id", m.ID)
	return FromDataModel(m), nil
}

func (s *Service) UpdateDriver(id int64, dto *DriverDTO) (*Driver, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get driver", "driver_id", id, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}

	m.FirstName = dto.FirstName
	m.LastName = dto.LastName
	m.Role = dto.Role
	if err := s.repo.Update(m); err != nil {
		s.logger.Error("failed to update driver", "driver_id", id, "error", err)
		return nil, err
	}
	return FromDataModel(m), nil
}

func (s *Service) DeleteDriver(id int64) error {
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get driver", "driver_id", id, "error", err)
		return err
	}
	if m == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
