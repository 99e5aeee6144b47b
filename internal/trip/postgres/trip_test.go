package postgres_test

import (
	"testing"

	"github.com/vilkasoft/backoffice/internal/trip"
	tripPostgres "github.com/vilkasoft/backoffice/internal/trip/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

func TestTripPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Trip Postgres Suite")
}

func leg(registration string, month, year, distance int) *fleetDatamodel.TripLeg {
	return &fleetDatamodel.TripLeg{
		Date:         "2025-03-05",
		Driver:       "Jonas Petrauskas",
		Origin:       "Vilnius",
		Destination:  "Kaunas",
		DistanceKm:   distance,
		Registration: registration,
		MonthLabel:   "March",
		Month:        month,
		Year:         year,
	}
}

var _ = Describe("Trip Log Repository", func() {
	var (
		db   *gorm.DB
		repo trip.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&fleetDatamodel.TripLeg{})
		Expect(err).NotTo(HaveOccurred())

		repo = tripPostgres.NewTripLogRepository(db)
	})

	Describe("ReplaceLog", func() {
		It("stores legs and preserves insertion order", func() {
			legs := []*fleetDatamodel.TripLeg{
				leg("ABC123", 3, 2025, 300),
				leg("ABC123", 3, 2025, 500),
			}
			Expect(repo.ReplaceLog("ABC123", 3, 2025, legs)).To(Succeed())

			stored, err := repo.GetLog("ABC123", 3, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(HaveLen(2))
			Expect(stored[0].DistanceKm).To(Equal(300))
			Expect(stored[1].DistanceKm).To(Equal(500))
		})

		It("replaces the existing month wholesale", func() {
			Expect(repo.ReplaceLog("ABC123", 3, 2025, []*fleetDatamodel.TripLeg{
				leg("ABC123", 3, 2025, 300),
				leg("ABC123", 3, 2025, 300),
			})).To(Succeed())

			Expect(repo.ReplaceLog("ABC123", 3, 2025, []*fleetDatamodel.TripLeg{
				leg("ABC123", 3, 2025, 150),
			})).To(Succeed())

			stored, err := repo.GetLog("ABC123", 3, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(HaveLen(1))
			Expect(stored[0].DistanceKm).To(Equal(150))
		})

		It("leaves other vehicle months untouched", func() {
			Expect(repo.ReplaceLog("ABC123", 3, 2025, []*fleetDatamodel.TripLeg{leg("ABC123", 3, 2025, 300)})).To(Succeed())
			Expect(repo.ReplaceLog("DEF456", 3, 2025, []*fleetDatamodel.TripLeg{leg("DEF456", 3, 2025, 400)})).To(Succeed())
			Expect(repo.ReplaceLog("ABC123", 4, 2025, []*fleetDatamodel.TripLeg{leg("ABC123", 4, 2025, 500)})).To(Succeed())

			Expect(repo.ReplaceLog("ABC123", 3, 2025, nil)).To(Succeed())

			other, err := repo.GetLog("DEF456", 3, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(other).To(HaveLen(1))

			april, err := repo.GetLog("ABC123", 4, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(april).To(HaveLen(1))
		})
	})

	Describe("DeleteLog", func() {
		It("drops only the requested month", func() {
			Expect(repo.ReplaceLog("ABC123", 3, 2025, []*fleetDatamodel.TripLeg{leg("ABC123", 3, 2025, 300)})).To(Succeed())
			Expect(repo.ReplaceLog("ABC123", 4, 2025, []*fleetDatamodel.TripLeg{leg("ABC123", 4, 2025, 400)})).To(Succeed())

			Expect(repo.DeleteLog("ABC123", 3, 2025)).To(Succeed())

			march, err := repo.GetLog("ABC123", 3, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(march).To(BeEmpty())

			april, err := repo.GetLog("ABC123", 4, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(april).To(HaveLen(1))
		})
	})
})
