package trip_test

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"testing"

	"github.com/vilkasoft/backoffice/internal/trip"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

func TestTripService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Trip Service Suite")
}

// MockReaders implements the reader interfaces the service consumes
type MockReaders struct {
	liters       float64
	litersErr    error
	vehicle      *fleetDatamodel.Vehicle
	vehicleErr   error
	destinations []*fleetDatamodel.Destination
	drivers      []*fleetDatamodel.Driver
}

func (m *MockReaders) SumLitersForMonth(registration string, month, year int) (float64, error) {
	return m.liters, m.litersErr
}

func (m *MockReaders) GetByRegistration(registration string) (*fleetDatamodel.Vehicle, error) {
	return m.vehicle, m.vehicleErr
}

type MockDestinationReader struct{ m *MockReaders }

func (r MockDestinationReader) GetAll() ([]*fleetDatamodel.Destination, error) {
	return r.m.destinations, nil
}

type MockDriverReader struct{ m *MockReaders }

func (r MockDriverReader) GetAll() ([]*fleetDatamodel.Driver, error) {
	return r.m.drivers, nil
}

// MockTripRepository implements trip.RepositoryAPI
type MockTripRepository struct {
	logs       map[string][]*fleetDatamodel.TripLeg
	shouldFail bool
}

func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{logs: make(map[string][]*fleetDatamodel.TripLeg)}
}

func (m *MockTripRepository) key(registration string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", registration, month, year)
}

func (m *MockTripRepository) ReplaceLog(registration string, month, year int, legs []*fleetDatamodel.TripLeg) error {
	if m.shouldFail {
		return errors.New("storage failure")
	}
	m.logs[m.key(registration, month, year)] = legs
	return nil
}

func (m *MockTripRepository) GetLog(registration string, month, year int) ([]*fleetDatamodel.TripLeg, error) {
	if m.shouldFail {
		return nil, errors.New("storage failure")
	}
	return m.logs[m.key(registration, month, year)], nil
}

func (m *MockTripRepository) DeleteLog(registration string, month, year int) error {
	if m.shouldFail {
		return errors.New("storage failure")
	}
	delete(m.logs, m.key(registration, month, year))
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testDrivers() []*fleetDatamodel.Driver {
	return []*fleetDatamodel.Driver{
		{ID: 1, FirstName: "Jonas", LastName: "Petrauskas"},
		{ID: 2, FirstName: "Tomas", LastName: "Kazlauskas"},
	}
}

func testDestinations(distances ...float64) []*fleetDatamodel.Destination {
	dests := make([]*fleetDatamodel.Destination, 0, len(distances))
	for i, d := range distances {
		dests = append(dests, &fleetDatamodel.Destination{
			ID:         int64(i + 1),
			StartPoint: "Vilnius",
			EndPoint:   "Kaunas",
			Company:    "UAB Klientas",
			DistanceKm: d,
		})
	}
	return dests
}

var _ = Describe("Trip Service", func() {
	var (
		readers *MockReaders
		repo    *MockTripRepository
		service *trip.Service
	)

	newService := func() *trip.Service {
		return trip.NewService(readers, readers, MockDestinationReader{readers}, MockDriverReader{readers},
			repo, trip.NewGenerator(rand.New(rand.NewSource(1))), nil, testLogger())
	}

	BeforeEach(func() {
		readers = &MockReaders{
			liters:       600,
			vehicle:      &fleetDatamodel.Vehicle{ID: 1, Registration: "ABC123", Consumption: 30},
			destinations: testDestinations(300, 500, 1200),
			drivers:      testDrivers(),
		}
		repo = NewMockTripRepository()
		service = newService()
	})

	Describe("GenerateLog", func() {
		It("derives the kilometer budget from fuel and consumption", func() {
			resp, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.FuelLiters).To(Equal(600.0))
			// 600 / 30 * 100
			Expect(resp.TotalKm).To(Equal(2000.0))
		})

		It("consumes destinations in order and shrinks the last pair to the remainder", func() {
			resp, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).NotTo(HaveOccurred())

			// 300*2 + 500*2 exhausts 1600 of 2000; the 1200 km destination
			// shrinks to the 400 km remainder, 200 each way
			Expect(resp.Legs).To(HaveLen(6))
			Expect(resp.Legs[0].DistanceKm).To(Equal(300))
			Expect(resp.Legs[1].DistanceKm).To(Equal(300))
			Expect(resp.Legs[2].DistanceKm).To(Equal(500))
			Expect(resp.Legs[3].DistanceKm).To(Equal(500))
			Expect(resp.Legs[4].DistanceKm).To(Equal(200))
			Expect(resp.Legs[5].DistanceKm).To(Equal(200))
		})

		It("emits outbound and return legs as pairs sharing a date", func() {
			resp, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(len(resp.Legs) % 2).To(Equal(0))

			for i := 0; i < len(resp.Legs); i += 2 {
				out, ret := resp.Legs[i], resp.Legs[i+1]
				Expect(out.Date).To(Equal(ret.Date))
				Expect(out.Origin).To(Equal(ret.Destination))
				Expect(out.Destination).To(Equal(ret.Origin))
				Expect(out.DistanceKm).To(Equal(ret.DistanceKm))
			}
		})

		It("returns ErrVehicleNotFound for an unknown registration", func() {
			readers.vehicle = nil
			service = newService()

			_, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "NOPE1"})
			Expect(err).To(MatchError(trip.ErrVehicleNotFound))
		})

		It("returns ErrNoConsumption when the vehicle has no consumption rate", func() {
			readers.vehicle.Consumption = 0
			service = newService()

			_, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).To(MatchError(trip.ErrNoConsumption))
		})

		It("returns ErrInsufficientFuel when no fuel was recorded for the month", func() {
			readers.liters = 0
			service = newService()

			_, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).To(MatchError(trip.ErrInsufficientFuel))
		})

		It("returns ErrNoDrivers when the driver registry is empty", func() {
			readers.drivers = nil
			service = newService()

			_, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).To(MatchError(trip.ErrNoDrivers))
		})

		It("returns ErrNoDestinations when the destination registry is empty", func() {
			readers.destinations = nil
			service = newService()

			_, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).To(MatchError(trip.ErrNoDestinations))
		})

		It("rejects an out-of-range month", func() {
			_, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 13, Year: 2025, Registration: "ABC123"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SaveLog and GetLog", func() {
		It("persists legs and reads them back in stored order", func() {
			resp, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).NotTo(HaveOccurred())

			err = service.SaveLog(&trip.SaveLogDTO{
				Month: 3, Year: 2025, Registration: "ABC123", Legs: resp.Legs,
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := service.GetLog("ABC123", 3, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(HaveLen(len(resp.Legs)))
			Expect(stored[0].Origin).To(Equal(resp.Legs[0].Origin))
			Expect(stored[len(stored)-1].DistanceKm).To(Equal(resp.Legs[len(resp.Legs)-1].DistanceKm))
		})

		It("replaces an existing month wholesale", func() {
			first, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.SaveLog(&trip.SaveLogDTO{Month: 3, Year: 2025, Registration: "ABC123", Legs: first.Legs})).To(Succeed())

			Expect(service.SaveLog(&trip.SaveLogDTO{Month: 3, Year: 2025, Registration: "ABC123", Legs: first.Legs[:2]})).To(Succeed())

			stored, err := service.GetLog("ABC123", 3, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(HaveLen(2))
		})
	})

	Describe("DeleteLog", func() {
		It("drops the stored month", func() {
			resp, err := service.GenerateLog(&trip.GenerateLogDTO{Month: 3, Year: 2025, Registration: "ABC123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.SaveLog(&trip.SaveLogDTO{Month: 3, Year: 2025, Registration: "ABC123", Legs: resp.Legs})).To(Succeed())

			Expect(service.DeleteLog("ABC123", 3, 2025)).To(Succeed())

			stored, err := service.GetLog("ABC123", 3, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeEmpty())
		})
	})
})
