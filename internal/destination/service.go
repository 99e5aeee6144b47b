package destination

import (
	"log/slog"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

type RepositoryAPI interface {
	GetAll() ([]*fleetDatamodel.Destination, error)
	GetByID(id int64) (*fleetDatamodel.Destination, error)
	Create(destination *fleetDatamodel.Destination) error
	Update(destination *fleetDatamodel.Destination) error
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

func (s *Service) GetAllDestinations() ([]*Destination, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get destinations from repository", "error", err)
		return nil, err
	}

	destinations := make([]*Destination, 0, len(models))
	for _, m := range models {
		destinations = append(destinations, FromDataModel(m))
	}
	return destinations, nil
}

func (s *Service) CreateDestination(dto *DestinationDTO) (*Destination, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m := &fleetDatamodel.Destination{
		StartPoint: dto.StartPoint,
		EndPoint:   dto.EndPoint,
		Company:    dto.Company,
		DistanceKm: dto.DistanceKm,
		Note:       dto.Note,
	}
	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to create destination", "error", err)
		return nil, err
	}

	s.logger.Info("destination created", "destination_id", m.ID)
	return FromDataModel(m), nil
}

func (s *Service) UpdateDestination(id int64, dto *DestinationDTO) (*Destination, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get destination", "destination_id", id, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}

	m.StartPoint = dto.StartPoint
	m.EndPoint = dto.EndPoint
	m.Company = dto.Company
	m.DistanceKm = dto.DistanceKm
	m.Note = dto.Note
	if err := s.repo.Update(m); err != nil {
		s.logger.Error("failed to update destination", "destination_id", id, "error", err)
		return nil, err
	}
	return FromDataModel(m), nil
}

func (s *Service) DeleteDestination(id int64) error {
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get destination", "destination_id", id, "error", err)
		return err
	}
	if m == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
