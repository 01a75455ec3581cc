package segmenter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petem573/dealflow/internal/segmenter"
)

func TestSegmentSplitsOnGlyphBoundaries(t *testing.T) {
	body := "🚀 Alpha raised $1M.🔥 Beta raised $2M."

	got := segmenter.Segment(body)

	assert.Equal(t, []string{"🚀 Alpha raised $1M.", "🔥 Beta raised $2M."}, got)
}

func TestSegmentDiscardsPreamble(t *testing.T) {
	body := "Here are this week's deals:\n⚡ Voltaic, a grid startup, raised $5m in seed funding."

	got := segmenter.Segment(body)

	assert.Len(t, got, 1)
	assert.Equal(t, "⚡ Voltaic, a grid startup, raised $5m in seed funding.", got[0])
}

func TestSegmentNoGlyphsYieldsNothing(t *testing.T) {
	assert.Empty(t, segmenter.Segment("Plain article text with no deal markers at all."))
	assert.Empty(t, segmenter.Segment(""))
}

func TestSegmentTreatsGlyphRunAsOneBoundary(t *testing.T) {
	body := "⚡🌱 GreenSun raised $3m. 🚗 AutoVolt raised $9m."

	got := segmenter.Segment(body)

	assert.Len(t, got, 2)
	assert.Contains(t, got[0], "GreenSun raised $3m.")
	assert.Contains(t, got[1], "AutoVolt raised $9m.")
}

func TestWantsExtraction(t *testing.T) {
	assert.True(t, segmenter.WantsExtraction("🚀 Alpha raised $1M from Acme Capital."))
	assert.True(t, segmenter.WantsExtraction("🔥 Beta closed a funding round."))
	assert.False(t, segmenter.WantsExtraction("📅 Join our webinar on green hydrogen next week."))
}
