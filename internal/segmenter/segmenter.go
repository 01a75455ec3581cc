// Package segmenter splits bulletin-style article bodies into
// independent deal-candidate strings. Bulletin publications mark the
// start of each item with a run of pictographic glyphs; those runs are
// the only reliable deal boundaries in the free text.
package segmenter

import "strings"

// boundaryRange is an inclusive range of rune code points treated as
// deal-boundary glyphs.
type boundaryRange struct {
	lo, hi rune
}

// boundaryRanges covers the emoji and symbol blocks used editorially to
// introduce bulletin items.
var boundaryRanges = []boundaryRange{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1FA00, 0x1FAFF}, // symbols and pictographs extended-A
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
}

// fundingKeywords gates which candidates are worth an extraction call.
// Bulletin items share the glyph convention with news briefs and event
// announcements; only items that talk about money move on.
var fundingKeywords = []string{"raised", "funding"}

// isBoundaryRune reports whether r belongs to one of the glyph blocks.
func isBoundaryRune(r rune) bool {
	for _, br := range boundaryRanges {
		if r >= br.lo && r <= br.hi {
			return true
		}
	}
	return false
}

// Segment splits body into an ordered sequence of deal candidates. Each
// maximal run of boundary glyphs starts a new candidate consisting of
// the run itself followed by the trimmed text up to the next run. Text
// before the first run is preamble and is discarded. A body with no
// boundary glyphs yields no candidates; callers treat that as "no
// deals", not an error.
func Segment(body string) []string {
	runes := []rune(body)

	var candidates []string
	var marker, chunk []rune
	inCandidate := false

	flush := func() {
		if !inCandidate {
			return
		}
		item := string(marker)
		if text := strings.TrimSpace(string(chunk)); text != "" {
			item += " " + text
		}
		candidates = append(candidates, item)
		marker = marker[:0]
		chunk = chunk[:0]
	}

	for i := 0; i < len(runes); i++ {
		if isBoundaryRune(runes[i]) {
			flush()
			inCandidate = true
			for i < len(runes) && isBoundaryRune(runes[i]) {
				marker = append(marker, runes[i])
				i++
			}
			i--
			continue
		}
		if inCandidate {
			chunk = append(chunk, runes[i])
		}
	}
	flush()

	return candidates
}

// WantsExtraction reports whether the candidate mentions one of the
// funding keywords and is therefore worth sending to the extractor.
func WantsExtraction(candidate string) bool {
	for _, kw := range fundingKeywords {
		if strings.Contains(candidate, kw) {
			return true
		}
	}
	return false
}
