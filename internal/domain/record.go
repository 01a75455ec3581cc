// Package domain defines the core types shared across the ingestion pipeline.
package domain

// NotSpecified is the canonical placeholder substituted for any field
// that is missing, null, or unparseable after normalization.
const NotSpecified = "Not Specified"

// ContentNotFound is the sentinel body returned by source adapters when
// the expected article structure is absent. Callers must compare against
// this value, not just check for an empty body.
const ContentNotFound = "Content not found."

// ArticleRef is a single article discovered on a listing page.
type ArticleRef struct {
	// URL is the unique identity key used for deduplication.
	URL string
	// Subsector is best-effort metadata parsed from the listing.
	Subsector string
}

// RawExtraction is the uninterpreted mapping returned by the LLM
// extractor. Keys and value shapes vary run to run; it never leaks past
// the normalizer.
type RawExtraction map[string]any

// FundingRecord is the canonical shape of one extracted funding event.
// String fields hold NotSpecified when the extractor returned nothing
// usable; OtherInvestors is nil in that case and serialized as the
// sentinel by the sink.
type FundingRecord struct {
	StartupName    string
	AmountRaised   string
	FundingStage   string
	LeadInvestor   string
	OtherInvestors []string
	SourceURL      string
	SourceSite     string
	Subsector      string
}

// Accepted reports whether the record qualifies for the output set.
// Records whose startup name could not be resolved are dropped.
func (r *FundingRecord) Accepted() bool {
	return r.StartupName != "" && r.StartupName != NotSpecified
}
