package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petem573/dealflow/internal/domain"
	"github.com/petem573/dealflow/internal/normalizer"
)

func TestNormalizeListLeadSplitsIntoLeadAndOthers(t *testing.T) {
	raw := domain.RawExtraction{
		"startup_name":    "Grid-X",
		"lead_investor":   []any{"X", "Y"},
		"other_investors": nil,
	}

	rec := normalizer.Normalize(raw)

	assert.Equal(t, "X", rec.LeadInvestor)
	assert.Equal(t, []string{"Y"}, rec.OtherInvestors)
}

func TestNormalizeListLeadTailPrecedesExistingOthers(t *testing.T) {
	raw := domain.RawExtraction{
		"lead_investors":  []any{"Alpha Capital", "Beta Fund"},
		"other_investors": []any{"Gamma Ventures"},
	}

	rec := normalizer.Normalize(raw)

	assert.Equal(t, "Alpha Capital", rec.LeadInvestor)
	assert.Equal(t, []string{"Beta Fund", "Gamma Ventures"}, rec.OtherInvestors)
}

func TestNormalizePrefersSingularLeadKey(t *testing.T) {
	raw := domain.RawExtraction{
		"lead_investor":  "Climate Capital",
		"lead_investors": []any{"Someone Else"},
	}

	rec := normalizer.Normalize(raw)

	assert.Equal(t, "Climate Capital", rec.LeadInvestor)
}

func TestNormalizeInvestorsKeyFallback(t *testing.T) {
	raw := domain.RawExtraction{
		"startup_name": "AquaSynth",
		"investors":    []any{"Powerhouse Ventures", "Tina's Angel Fund"},
	}

	rec := normalizer.Normalize(raw)

	assert.Equal(t, []string{"Powerhouse Ventures", "Tina's Angel Fund"}, rec.OtherInvestors)
}

func TestNormalizeNullishValuesBecomeSentinel(t *testing.T) {
	raw := domain.RawExtraction{
		"startup_name":    nil,
		"amount_raised":   "null",
		"other_investors": []any{"null"},
	}

	rec := normalizer.Normalize(raw)

	assert.Equal(t, domain.NotSpecified, rec.StartupName)
	assert.Equal(t, domain.NotSpecified, rec.AmountRaised)
	assert.Equal(t, domain.NotSpecified, rec.FundingStage)
	assert.Nil(t, rec.OtherInvestors)
	assert.False(t, rec.Accepted())
}

func TestNormalizeEmptyStartupNameIsRejected(t *testing.T) {
	raw := domain.RawExtraction{"startup_name": ""}

	rec := normalizer.Normalize(raw)

	assert.Equal(t, domain.NotSpecified, rec.StartupName)
	assert.False(t, rec.Accepted())
}

func TestNormalizeCompleteExtraction(t *testing.T) {
	raw := domain.RawExtraction{
		"startup_name":    "AIR",
		"amount_raised":   "$23m",
		"funding_stage":   "Series A",
		"lead_investor":   "Entrée Capital",
		"other_investors": []any{},
	}

	rec := normalizer.Normalize(raw)

	assert.Equal(t, "AIR", rec.StartupName)
	assert.Equal(t, "$23m", rec.AmountRaised)
	assert.Equal(t, "Series A", rec.FundingStage)
	assert.Equal(t, "Entrée Capital", rec.LeadInvestor)
	assert.Nil(t, rec.OtherInvestors)
	assert.True(t, rec.Accepted())
}

func TestNormalizeNumericAmount(t *testing.T) {
	raw := domain.RawExtraction{
		"startup_name":  "TerraVolt",
		"amount_raised": float64(15000000),
	}

	rec := normalizer.Normalize(raw)

	assert.Equal(t, "15000000", rec.AmountRaised)
}
