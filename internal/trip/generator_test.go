package trip_test

import (
	"math/rand"
	"time"

	"github.com/vilkasoft/backoffice/internal/trip"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

var _ = Describe("Generator", func() {
	newGen := func(seed int64) *trip.Generator {
		return trip.NewGenerator(rand.New(rand.NewSource(seed)))
	}

	It("is deterministic for a fixed random source", func() {
		dests := testDestinations(300, 500, 1200)
		drivers := testDrivers()

		a := newGen(42).Generate(3, 2025, "ABC123", 2000, dests, drivers)
		b := newGen(42).Generate(3, 2025, "ABC123", 2000, dests, drivers)
		Expect(a).To(Equal(b))
	})

	It("skips structurally incomplete destination rows", func() {
		dests := []*fleetDatamodel.Destination{
			{StartPoint: "", EndPoint: "Kaunas", DistanceKm: 100},
			{StartPoint: "Vilnius", EndPoint: "", DistanceKm: 100},
			{StartPoint: "Vilnius", EndPoint: "Kaunas", DistanceKm: 0},
			{StartPoint: "Vilnius", EndPoint: "Kaunas", DistanceKm: 100},
		}

		legs := newGen(1).Generate(3, 2025, "ABC123", 2000, dests, testDrivers())
		Expect(legs).To(HaveLen(2))
		Expect(legs[0].DistanceKm).To(Equal(100))
	})

	It("keeps every date inside the requested month", func() {
		dests := testDestinations(10, 10, 10, 10, 10, 10, 10, 10)

		legs := newGen(7).Generate(2, 2025, "ABC123", 10000, dests, testDrivers())
		Expect(legs).NotTo(BeEmpty())

		for _, leg := range legs {
			d, err := time.Parse("2006-01-02", leg.Date)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Month()).To(Equal(time.February))
			Expect(d.Year()).To(Equal(2025))
		}
	})

	It("gives each pair a day not used by another pair", func() {
		dests := testDestinations(10, 10, 10, 10, 10, 10, 10, 10, 10, 10)

		legs := newGen(9).Generate(3, 2025, "ABC123", 100000, dests, testDrivers())
		seen := map[string]bool{}
		for i := 0; i < len(legs); i += 2 {
			Expect(seen[legs[i].Date]).To(BeFalse())
			seen[legs[i].Date] = true
		}
	})

	It("stops once the budget is exhausted", func() {
		dests := testDestinations(500, 500, 500)

		// 1000 km covers the first round trip exactly
		legs := newGen(3).Generate(3, 2025, "ABC123", 1000, dests, testDrivers())
		Expect(legs).To(HaveLen(2))
		Expect(legs[0].DistanceKm).To(Equal(500))
	})

	It("truncates fractional shrunk distances to whole kilometers", func() {
		dests := testDestinations(400)

		// remainder 555 shrinks the pair to 277.5 each way
		legs := newGen(5).Generate(3, 2025, "ABC123", 555, dests, testDrivers())
		Expect(legs).To(HaveLen(2))
		Expect(legs[0].DistanceKm).To(Equal(277))
		Expect(legs[1].DistanceKm).To(Equal(277))
	})

	It("samples outbound and return drivers independently", func() {
		dests := testDestinations(100, 100, 100, 100, 100, 100, 100, 100)
		drivers := testDrivers()

		legs := newGen(11).Generate(3, 2025, "ABC123", 100000, dests, drivers)
		names := map[string]bool{}
		for _, leg := range legs {
			names[leg.Driver] = true
		}
		// with two drivers and sixteen samples both names should appear
		Expect(names).To(HaveLen(2))
	})

	It("labels legs with the month name and year", func() {
		legs := newGen(1).Generate(3, 2025, "ABC123", 2000, testDestinations(300), testDrivers())
		Expect(legs[0].MonthLabel).To(Equal("March"))
		Expect(legs[0].Year).To(Equal(2025))
		Expect(legs[0].Registration).To(Equal("ABC123"))
	})
})
