// Package generate fabricates dealers, locations, items and rate programs for
// seeding. Output is fully determined by the seed.
package generate

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/dealerseed/internal/seed/domain"
)

const (
	minDealers   = 5
	maxDealers   = 9
	minLocations = 1
	maxLocations = 4
	minItems     = 3
	maxItems     = 9
	minPrograms  = 1
	maxPrograms  = 3

	skuPattern = "##-######"
)

var (
	bikeNames = []string{
		"Stache 7",
		"Superfly 20",
		"T80 24-Speed Midstep BLX",
		"Verve 3 Women's",
		"Conduit+",
		"C720+ SE",
		"Domane ALR 3",
		"Domane ALR 4",
		"CrossRip 1",
		"Domane S 4",
		"Farley EX 9.8",
		"Ibiza 21-Speed Midstep BLX",
	}

	categories = []string{
		"Road bikes",
		"Hybrid bikes",
		"Mountain bikes",
		"Electric bikes",
		"Diamant bikes",
		"Electra bikes",
		"Kids' bikes",
		"City bikes",
	}

	dealerNames = []string{
		"Wheel & sprocket",
		"mountain goats",
		"rams & rims",
		"down we go",
		"bouncy bouncy",
		"trails & rails",
		"fat wheels",
		"tour du brek",
		"Brekenridge Adventures",
		"Backpackers",
	}

	cities = []string{
		"Hobart",
		"Launceston",
		"Ballarat",
		"Bendigo",
		"Wollongong",
		"Newcastle",
		"Cairns",
		"Townsville",
		"Toowoomba",
		"Geelong",
		"Albury",
		"Bunbury",
		"Mildura",
		"Orange",
		"Dubbo",
	}

	// Base prices in cents per rate type. Programs scale these.
	basePrices = map[domain.RateType]int64{
		domain.RateHourly:        1500,
		domain.RateHalfDay:       4500,
		domain.RateDaily:         7500,
		domain.RateWeekly:        35000,
		domain.RateMonthly:       99000,
		domain.RateWeekend:       13000,
		domain.RateAdditionalDay: 6000,
	}
)

// Dataset is one generated batch.
type Dataset struct {
	Dealers      []*domain.Dealer
	RatePrograms []domain.RateProgram
}

// LocationCount counts locations across all dealers.
func (d Dataset) LocationCount() int {
	n := 0
	for _, dealer := range d.Dealers {
		n += len(dealer.Locations)
	}
	return n
}

// Generator produces datasets from a seeded source.
type Generator struct {
	rng *rand.Rand
	ids *rand.ChaCha8
}

// New returns a generator seeded with seed.
func New(seed uint64) *Generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &Generator{
		rng: rand.New(src),
		ids: src,
	}
}

// Generate builds n dealers, or a random 5 to 9 when n <= 0. Every location
// is assigned to its dealer and every item references one of that dealer's
// rate programs.
func (g *Generator) Generate(n int) (Dataset, error) {
	if n <= 0 {
		n = g.between(minDealers, maxDealers)
	}

	var ds Dataset
	for range n {
		dealer, programs, err := g.dealer()
		if err != nil {
			return Dataset{}, err
		}
		ds.Dealers = append(ds.Dealers, dealer)
		ds.RatePrograms = append(ds.RatePrograms, programs...)
	}
	return ds, nil
}

func (g *Generator) dealer() (*domain.Dealer, []domain.RateProgram, error) {
	dealerID, err := g.uuid()
	if err != nil {
		return nil, nil, err
	}
	dealer := &domain.Dealer{
		DealerID: dealerID,
		Name:     pick(g.rng, dealerNames),
	}

	programs := make([]domain.RateProgram, g.between(minPrograms, maxPrograms))
	for i := range programs {
		if programs[i], err = g.rateProgram(dealerID); err != nil {
			return nil, nil, err
		}
	}

	for range g.between(minLocations, maxLocations) {
		loc, err := g.location(dealerID, programs)
		if err != nil {
			return nil, nil, err
		}
		dealer.Locations = append(dealer.Locations, loc)
	}
	return dealer, programs, nil
}

func (g *Generator) location(dealerID uuid.UUID, programs []domain.RateProgram) (*domain.Location, error) {
	locationID, err := g.uuid()
	if err != nil {
		return nil, err
	}
	loc := &domain.Location{
		LocationID: locationID,
		Name:       pick(g.rng, cities),
	}
	loc.Assign(dealerID)

	for range g.between(minItems, maxItems) {
		itemID, err := g.uuid()
		if err != nil {
			return nil, err
		}
		model := pick(g.rng, categories)
		loc.Items = append(loc.Items, domain.Item{
			ItemID:        itemID,
			Name:          pick(g.rng, bikeNames),
			Model:         model,
			Sku:           g.sku(skuPattern),
			RateProgramID: programs[g.rng.IntN(len(programs))].RateProgramID,
			Categories:    g.categories(model),
		})
	}
	return loc, nil
}

func (g *Generator) rateProgram(dealerID uuid.UUID) (domain.RateProgram, error) {
	id, err := g.uuid()
	if err != nil {
		return domain.RateProgram{}, err
	}

	// 80% to 140% of the base price list.
	scale := 80 + int64(g.rng.IntN(61))
	var rates []domain.Rate
	for _, rt := range domain.RateTypes() {
		base, ok := basePrices[rt]
		if !ok || (rt != domain.RateDaily && g.rng.IntN(3) == 0) {
			continue
		}
		// Round to the nearest 50 cents.
		price := (base*scale/100 + 25) / 50 * 50
		rates = append(rates, domain.Rate{RateType: rt, Price: price})
	}

	return domain.RateProgram{
		RateProgramID: id,
		PartitionKey:  domain.RateProgramPartitionKey(id),
		DealerID:      dealerID,
		Rates:         rates,
	}, nil
}

// categories returns the model category plus up to two more, without repeats.
func (g *Generator) categories(model string) []string {
	out := []string{model}
	for range g.rng.IntN(3) {
		c := pick(g.rng, categories)
		if !contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// sku replaces every '#' in pattern with a random digit.
func (g *Generator) sku(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	for _, r := range pattern {
		if r == '#' {
			b.WriteByte(byte('0' + g.rng.IntN(10)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (g *Generator) uuid() (uuid.UUID, error) {
	id, err := uuid.NewRandomFromReader(g.ids)
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate id: %w", err)
	}
	return id, nil
}

// between returns a value in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
