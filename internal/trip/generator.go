package trip

import (
	"fmt"
	"math/rand"
	"time"

	fleetDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/fleet"
)

// Generator turns a kilometer budget into trip-leg pairs. Driver and day
// sampling use the injected random source so runs can be made deterministic.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate distributes totalKm across the destinations, in the order given.
// Each surviving destination yields an outbound and a return leg sharing one
// date, with independently sampled drivers. The round-trip distance is
// subtracted at its pre-shrink value even when the emitted legs were shrunk
// to fit the remainder; that conservative subtraction is what terminates the
// loop.
func (g *Generator) Generate(month, year int, registration string, totalKm float64,
	destinations []*fleetDatamodel.Destination, drivers []*fleetDatamodel.Driver) []TripLeg {

	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	monthLabel := time.Month(month).String()
	usedDays := make(map[int]bool)

	remaining := totalKm
	var legs []TripLeg

	for _, dest := range destinations {
		if remaining <= 0 || len(usedDays) >= daysInMonth {
			break
		}
		// a row missing its endpoints or distance is skipped, not fatal
		if dest.StartPoint == "" || dest.EndPoint == "" || dest.DistanceKm <= 0 {
			continue
		}

		oneWay := dest.DistanceKm
		roundTrip := oneWay * 2
		if remaining < roundTrip {
			// this destination absorbs exactly the remainder
			oneWay = remaining / 2
		}

		day := g.pickDay(daysInMonth, usedDays)
		usedDays[day] = true
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		distance := int(oneWay)

		legs = append(legs, TripLeg{
			Date:         date,
			Driver:       g.pickDriver(drivers),
			Origin:       dest.StartPoint,
			Destination:  dest.EndPoint,
			Company:      dest.Company,
			DistanceKm:   distance,
			Registration: registration,
			MonthLabel:   monthLabel,
			Year:         year,
		})
		legs = append(legs, TripLeg{
			Date:         date,
			Driver:       g.pickDriver(drivers),
			Origin:       dest.EndPoint,
			Destination:  dest.StartPoint,
			Company:      dest.Company,
			DistanceKm:   distance,
			Registration: registration,
			MonthLabel:   monthLabel,
			Year:         year,
		})

		remaining -= roundTrip
	}

	return legs
}

// pickDay chooses uniformly among days not yet used. When every day of the
// month has been used the pool resets and days may repeat.
func (g *Generator) pickDay(daysInMonth int, usedDays map[int]bool) int {
	candidates := make([]int, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		if !usedDays[d] {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		for d := 1; d <= daysInMonth; d++ {
			candidates = append(candidates, d)
		}
	}
	return candidates[g.rng.Intn(len(candidates))]
}

func (g *Generator) pickDriver(drivers []*fleetDatamodel.Driver) string {
	d := drivers[g.rng.Intn(len(drivers))]
	return d.FirstName + " " + d.LastName
}
