package trip

import (
	"context"
	"log/slog"

	"github.com/vilkasoft/backoffice/internal/core/events"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

// Reader boundaries for the reference data the generator consumes. Each is a
// simple keyed lookup against the store, satisfied by the registry
// repositories.
type FuelLedger interface {
	SumLitersForMonth(registration string, month, year int) (float64, error)
}

type VehicleReader interface {
	GetByRegistration(registration string) (*fleetDatamodel.Vehicle, error)
}

type DestinationReader interface {
	GetAll() ([]*fleetDatamodel.Destination, error)
}

type DriverReader interface {
	GetAll() ([]*fleetDatamodel.Driver, error)
}

type RepositoryAPI interface {
	ReplaceLog(registration string, month, year int, legs []*fleetDatamodel.TripLeg) error
	GetLog(registration string, month, year int) ([]*fleetDatamodel.TripLeg, error)
	DeleteLog(registration string, month, year int) error
}

type Service struct {
	fuel         FuelLedger
	vehicles     VehicleReader
	destinations DestinationReader
	drivers      DriverReader
	repo         RepositoryAPI
	generator    *Generator
	bus          *events.EventBus
	logger       *slog.Logger
}

func NewService(fuel FuelLedger, vehicles VehicleReader, destinations DestinationReader,
	drivers DriverReader, repo RepositoryAPI, generator *Generator,
	bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		fuel:         fuel,
		vehicles:     vehicles,
		destinations: destinations,
		drivers:      drivers,
		repo:         repo,
		generator:    generator,
		bus:          bus,
		logger:       logger,
	}
}

// GenerateLog derives the month's kilometer budget from the fuel ledger and
// the vehicle's consumption rate, then distributes it across destinations.
// Every failure mode aborts before any leg is produced; nothing is persisted.
func (s *Service) GenerateLog(dto *GenerateLogDTO) (*GenerateLogResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByRegistration(dto.Registration)
	if err != nil {
		s.logger.Error("failed to load vehicle", "registration", dto.Registration, "error", err)
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	if vehicle.Consumption <= 0 {
		return nil, ErrNoConsumption
	}

	fuelLiters, err := s.fuel.SumLitersForMonth(dto.Registration, dto.Month, dto.Year)
	if err != nil {
		s.logger.Error("failed to sum fuel records", "registration", dto.Registration, "error", err)
		return nil, err
	}

	totalKm := fuelLiters / vehicle.Consumption * 100
	if totalKm <= 0 {
		return nil, ErrInsufficientFuel
	}

	drivers, err := s.drivers.GetAll()
	if err != nil {
		s.logger.Error("failed to load drivers", "error", err)
		return nil, err
	}
	if len(drivers) == 0 {
		return nil, ErrNoDrivers
	}

	destinations, err := s.destinations.GetAll()
	if err != nil {
		s.logger.Error("failed to load destinations", "error", err)
		return nil, err
	}
	if len(destinations) == 0 {
		return nil, ErrNoDestinations
	}

	legs := s.generator.Generate(dto.Month, dto.Year, dto.Registration, totalKm, destinations, drivers)

	s.logger.Info("trip log generated",
		"registration", dto.Registration,
		"month", dto.Month,
		"year", dto.Year,
		"fuel_liters", fuelLiters,
		"total_km", totalKm,
		"legs", len(legs))
	s.publish(events.NewTripLogGeneratedEvent(dto.Registration, dto.Month, dto.Year, len(legs), int(totalKm)))

	return &GenerateLogResponse{
		Registration: dto.Registration,
		Month:        dto.Month,
		Year:         dto.Year,
		FuelLiters:   fuelLiters,
		TotalKm:      totalKm,
		Legs:         legs,
	}, nil
}

// SaveLog replaces the vehicle's stored logbook for the month with the given
// legs in one transaction.
func (s *Service) SaveLog(dto *SaveLogDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	models := make([]*fleetDatamodel.TripLeg, 0, len(dto.Legs))
	for _, leg := range dto.Legs {
		models = append(models, toDataModel(leg, dto.Month))
	}

	if err := s.repo.ReplaceLog(dto.Registration, dto.Month, dto.Year, models); err != nil {
		s.logger.Error("failed to save trip log", "registration", dto.Registration, "error", err)
		return err
	}

	s.logger.Info("trip log saved", "registration", dto.Registration, "month", dto.Month, "year", dto.Year, "legs", len(dto.Legs))
	s.publish(events.NewTripLogSavedEvent(dto.Registration, dto.Month, dto.Year, len(dto.Legs)))
	return nil
}

// GetLog returns the stored logbook for a vehicle month, in stored order.
// Date sorting is left to the presentation layer.
func (s *Service) GetLog(registration string, month, year int) ([]TripLeg, error) {
	models, err := s.repo.GetLog(registration, month, year)
	if err != nil {
		s.logger.Error("failed to load trip log", "registration", registration, "error", err)
		return nil, err
	}

	legs := make([]TripLeg, 0, len(models))
	for _, m := range models {
		legs = append(legs, fromDataModel(m))
	}
	return legs, nil
}

// DeleteLog drops the stored logbook for a vehicle month.
func (s *Service) DeleteLog(registration string, month, year int) error {
	if err := s.repo.DeleteLog(registration, month, year); err != nil {
		s.logger.Error("failed to delete trip log", "registration", registration, "error", err)
		return err
	}
	return nil
}

func (s *Service) publish(event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
