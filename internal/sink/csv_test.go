package sink_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petem573/dealflow/internal/domain"
	"github.com/petem573/dealflow/internal/logger"
	"github.com/petem573/dealflow/internal/sink"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestFlushWritesHeaderAndRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funding.csv")
	s := sink.NewCSV(path, logger.NewNoOp())

	err := s.Flush([]domain.FundingRecord{{
		StartupName:    "Grid-X",
		AmountRaised:   "$12 million",
		FundingStage:   "Series A",
		LeadInvestor:   "Climate Capital",
		OtherInvestors: []string{"Powerhouse Ventures", "Tina's Angel Fund"},
		SourceURL:      "https://example.com/grid-x",
		SourceSite:     "Canary Media",
		Subsector:      "Grid",
	}})
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"startup_name", "subsector", "amount_raised", "funding_stage",
		"lead_investor", "other_investors", "source_url", "source_site",
	}, rows[0])
	assert.Equal(t, "Grid-X", rows[1][0])
	assert.Equal(t, "Powerhouse Ventures; Tina's Angel Fund", rows[1][5])
}

func TestFlushNilInvestorsWritesSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funding.csv")
	s := sink.NewCSV(path, logger.NewNoOp())

	require.NoError(t, s.Flush([]domain.FundingRecord{{StartupName: "Solo"}}))

	rows := readCSV(t, path)
	assert.Equal(t, domain.NotSpecified, rows[1][5])
}

func TestAppendReconcilesHeterogeneousKeySets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funding.csv")
	s := sink.NewCSV(path, logger.NewNoOp())

	require.NoError(t, s.Append([]map[string]string{
		{"startup_name": "Alpha", "amount_raised": "$1M", "zz_extra": "x"},
		{"startup_name": "Beta", "funding_stage": "Seed", "aa_extra": "y"},
	}))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"startup_name", "amount_raised", "funding_stage", "aa_extra", "zz_extra"}, rows[0])

	// Alpha has no funding_stage or aa_extra; Beta has no amount_raised
	// or zz_extra. Absent keys become empty cells.
	assert.Equal(t, []string{"Alpha", "$1M", "", "", "x"}, rows[1])
	assert.Equal(t, []string{"Beta", "", "Seed", "y", ""}, rows[2])
}

func TestAppendToExistingFileSkipsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funding.csv")
	s := sink.NewCSV(path, logger.NewNoOp())

	require.NoError(t, s.Append([]map[string]string{{"startup_name": "Alpha"}}))
	require.NoError(t, s.Append([]map[string]string{{"startup_name": "Beta"}}))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alpha", rows[1][0])
	assert.Equal(t, "Beta", rows[2][0])
}

func TestFlushZeroRecordsLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funding.csv")
	s := sink.NewCSV(path, logger.NewNoOp())

	require.NoError(t, s.Flush(nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
