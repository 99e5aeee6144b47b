package postgres_test

import (
	"testing"

	"github.com/vilkasoft/backoffice/internal/vehicle"
	vehiclePostgres "github.com/vilkasoft/backoffice/internal/vehicle/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

func TestVehiclePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Vehicle Postgres Suite")
}

var _ = Describe("Vehicle Repository", func() {
	var (
		db   *gorm.DB
		repo vehicle.RepositoryAPI
	)

	addFuel := func(registration, date string, liters float64) {
		Expect(db.Create(&fleetDatamodel.FuelRecord{
			Registration: registration,
			Date:         date,
			Liters:       liters,
		}).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&fleetDatamodel.Vehicle{}, &fleetDatamodel.FuelRecord{})
		Expect(err).NotTo(HaveOccurred())

		repo = vehiclePostgres.NewVehicleRepository(db)
	})

	Describe("GetByRegistration", func() {
		It("finds a vehicle by its plate", func() {
			Expect(repo.Create(&fleetDatamodel.Vehicle{Registration: "ABC123", Consumption: 9.5})).To(Succeed())

			v, err := repo.GetByRegistration("ABC123")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).NotTo(BeNil())
			Expect(v.Consumption).To(Equal(9.5))
		})

		It("returns nil for an unknown plate", func() {
			v, err := repo.GetByRegistration("NOPE1")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNil())
		})

		It("rejects a duplicate plate", func() {
			Expect(repo.Create(&fleetDatamodel.Vehicle{Registration: "ABC123"})).To(Succeed())
			Expect(repo.Create(&fleetDatamodel.Vehicle{Registration: "ABC123"})).NotTo(Succeed())
		})
	})

	Describe("SumLitersForMonth", func() {
		It("sums only records whose date carries the month prefix", func() {
			addFuel("ABC123", "2025-03-01", 50)
			addFuel("ABC123", "2025-03-15", 40)
			addFuel("ABC123", "2025-04-01", 60)
			addFuel("DEF456", "2025-03-10", 70)

			total, err := repo.SumLitersForMonth("ABC123", 3, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(90.0))
		})

		It("does not confuse months across years", func() {
			addFuel("ABC123", "2024-03-01", 50)
			addFuel("ABC123", "2025-03-01", 30)

			total, err := repo.SumLitersForMonth("ABC123", 3, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(30.0))
		})

		It("returns zero when the month has no records", func() {
			total, err := repo.SumLitersForMonth("ABC123", 7, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(0.0))
		})
	})

	Describe("GetFuelRecords", func() {
		It("returns the vehicle's records ordered by date", func() {
			addFuel("ABC123", "2025-03-15", 40)
			addFuel("ABC123", "2025-03-01", 50)

			records, err := repo.GetFuelRecords("ABC123")
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].Date).To(Equal("2025-03-01"))
		})
	})
})
