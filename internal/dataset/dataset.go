// Package dataset generates mock funding-event CSV files for testing
// downstream analysis without hitting any live sources.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
)

// Headers is the column order of a generated dataset.
var Headers = []string{
	"funding_date", "company_name", "amount_raised_usd", "funding_stage",
	"investors", "climate_tech_vertical", "headquarters_country",
	"headquarters_city", "short_description", "company_website", "source_url",
}

var (
	companyAdjectives = []string{"Aura", "Helio", "Terra", "Aqua", "Myco", "Geo", "Atmo", "Grid"}
	companyNouns      = []string{"Volt", "Synth", "Gen", "Scale", "Carbon", "Cycle", "DAO", "Labs"}
	fundingStages     = []string{"Seed", "Series A", "Series B", "Grant"}
	verticals         = []string{"Energy", "Mobility", "Food & Ag", "Carbon Tech", "Industrial Decarbonization", "Climate Adaptation"}
	investors         = []string{"Breakthrough Energy Ventures", "Lowercarbon Capital", "Congruent Ventures", "Khosla Ventures", "Y Combinator", "a16z"}
	countries         = map[string][]string{
		"USA":     {"San Francisco", "Boston", "New York"},
		"Germany": {"Berlin", "Munich"},
		"UK":      {"London"},
	}
	countryNames = []string{"USA", "Germany", "UK"}
)

// Event is one mock funding announcement.
type Event struct {
	FundingDate     string
	CompanyName     string
	AmountRaisedUSD int
	FundingStage    string
	Investors       string
	Vertical        string
	Country         string
	City            string
	Description     string
	Website         string
	SourceURL       string
}

func (e Event) row() []string {
	return []string{
		e.FundingDate,
		e.CompanyName,
		fmt.Sprintf("%d", e.AmountRaisedUSD),
		e.FundingStage,
		e.Investors,
		e.Vertical,
		e.Country,
		e.City,
		e.Description,
		e.Website,
		e.SourceURL,
	}
}

// Generator produces deterministic mock events for a given seed.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator seeds a generator. Pass a fixed seed for reproducible output.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now(),
	}
}

// Generate returns count mock funding events.
func (g *Generator) Generate(count int) []Event {
	events := make([]Event, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, g.event())
	}
	return events
}

func (g *Generator) event() Event {
	company := g.pick(companyAdjectives) + g.pick(companyNouns)
	country := g.pick(countryNames)
	city := g.pick(countries[country])
	stage := g.pick(fundingStages)
	amount := g.amountFor(stage)

	return Event{
		FundingDate:     g.now.AddDate(0, 0, -g.intn(1, 365)).Format("2006-01-02"),
		CompanyName:     company,
		AmountRaisedUSD: amount,
		FundingStage:    stage,
		Investors:       strings.Join(g.sample(investors, g.intn(1, 3)), "|"),
		Vertical:        g.pick(verticals),
		Country:         country,
		City:            city,
		Description:     fmt.Sprintf("Developing novel %s technology for the %s sector.", strings.ToLower(stage), g.pick(verticals)),
		Website:         fmt.Sprintf("https://www.%s.com", strings.ToLower(company)),
		SourceURL:       fmt.Sprintf("https://techcrunch.com/2025/01/15/%s-raises-%dm/", strings.ToLower(company), amount/1_000_000),
	}
}

// amountFor scales the round size to the stage; grants stay in the
// hundreds of thousands.
func (g *Generator) amountFor(stage string) int {
	switch stage {
	case "Seed":
		return g.intn(1, 5) * 1_000_000
	case "Series A":
		return g.intn(10, 25) * 1_000_000
	case "Series B":
		return g.intn(30, 100) * 1_000_000
	default:
		return g.intn(100, 500) * 1_000
	}
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// intn returns a value in [low, high] inclusive.
func (g *Generator) intn(low, high int) int {
	return low + g.rng.Intn(high-low+1)
}

// sample picks k distinct entries from pool, order randomized.
func (g *Generator) sample(pool []string, k int) []string {
	idx := g.rng.Perm(len(pool))
	out := make([]string, 0, k)
	for _, i := range idx[:k] {
		out = append(out, pool[i])
	}
	return out
}

// WriteCSV writes the events to path with the standard header row.
func WriteCSV(path string, events []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range events {
		if err := w.Write(e.row()); err != nil {
			return fmt.Errorf("write event row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}
