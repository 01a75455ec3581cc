package dataset_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petem573/dealflow/internal/dataset"
)

func TestGenerateCount(t *testing.T) {
	gen := dataset.NewGenerator(1)
	events := gen.Generate(25)
	assert.Len(t, events, 25)
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a := dataset.NewGenerator(42).Generate(5)
	b := dataset.NewGenerator(42).Generate(5)
	for i := range a {
		assert.Equal(t, a[i].CompanyName, b[i].CompanyName)
		assert.Equal(t, a[i].AmountRaisedUSD, b[i].AmountRaisedUSD)
	}
}

func TestAmountsMatchStage(t *testing.T) {
	gen := dataset.NewGenerator(7)
	for _, e := range gen.Generate(200) {
		switch e.FundingStage {
		case "Seed":
			assert.GreaterOrEqual(t, e.AmountRaisedUSD, 1_000_000)
			assert.LessOrEqual(t, e.AmountRaisedUSD, 5_000_000)
		case "Series A":
			assert.GreaterOrEqual(t, e.AmountRaisedUSD, 10_000_000)
			assert.LessOrEqual(t, e.AmountRaisedUSD, 25_000_000)
		case "Series B":
			assert.GreaterOrEqual(t, e.AmountRaisedUSD, 30_000_000)
			assert.LessOrEqual(t, e.AmountRaisedUSD, 100_000_000)
		case "Grant":
			assert.GreaterOrEqual(t, e.AmountRaisedUSD, 100_000)
			assert.LessOrEqual(t, e.AmountRaisedUSD, 500_000)
		default:
			t.Fatalf("unexpected stage %q", e.FundingStage)
		}
	}
}

func TestInvestorsPipeJoinedAndDistinct(t *testing.T) {
	gen := dataset.NewGenerator(3)
	for _, e := range gen.Generate(50) {
		names := strings.Split(e.Investors, "|")
		require.NotEmpty(t, names)
		assert.LessOrEqual(t, len(names), 3)
		seen := map[string]bool{}
		for _, n := range names {
			assert.False(t, seen[n], "duplicate investor %q", n)
			seen[n] = true
		}
	}
}

func TestDatesWithinPastYear(t *testing.T) {
	gen := dataset.NewGenerator(9)
	yearAgo := time.Now().AddDate(0, 0, -366)
	for _, e := range gen.Generate(50) {
		d, err := time.Parse("2006-01-02", e.FundingDate)
		require.NoError(t, err)
		assert.True(t, d.After(yearAgo))
		assert.True(t, d.Before(time.Now()))
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funding_events.csv")
	events := dataset.NewGenerator(11).Generate(10)
	require.NoError(t, dataset.WriteCSV(path, events))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, dataset.Headers, rows[0])

	amount, err := strconv.Atoi(rows[1][2])
	require.NoError(t, err)
	assert.Equal(t, events[0].AmountRaisedUSD, amount)
}
