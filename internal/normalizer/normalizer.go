// Package normalizer reconciles the loosely-structured output of the
// LLM extractor into the canonical funding-record shape. The upstream
// extraction is a best-effort model call with no schema enforcement;
// this package is the only place that absorbs its variance, so
// downstream consumers see exactly one shape.
package normalizer

import (
	"fmt"
	"strings"

	"github.com/petem573/dealflow/internal/domain"
)

// Normalize applies the reconciliation rules, in order:
//
//  1. The lead investor comes from whichever of lead_investor or
//     lead_investors is present, singular key preferred.
//  2. Other investors come from whichever of other_investors or
//     investors is present.
//  3. If the resolved lead is itself a list, its first element is the
//     true lead and the remaining elements are prepended to the other
//     investors, order preserved.
//  4. Any field that is absent, null, the literal "null", or the
//     single-element list ["null"] becomes the NotSpecified sentinel.
func Normalize(raw domain.RawExtraction) domain.FundingRecord {
	lead := firstPresent(raw, "lead_investor", "lead_investors")
	others := toInvestorList(firstPresent(raw, "other_investors", "investors"))

	if leadList := toInvestorList(lead); leadList != nil {
		if others == nil {
			others = []string{}
		}
		others = append(leadList[1:], others...)
		lead = leadList[0]
	}

	return domain.FundingRecord{
		StartupName:    scalarOrSentinel(raw["startup_name"]),
		AmountRaised:   scalarOrSentinel(raw["amount_raised"]),
		FundingStage:   scalarOrSentinel(raw["funding_stage"]),
		LeadInvestor:   scalarOrSentinel(lead),
		OtherInvestors: listOrNil(others),
	}
}

// firstPresent returns the first non-empty value among the given keys.
// Empty strings and empty lists do not count as present, matching the
// fall-through behavior callers rely on for the investor key variants.
func firstPresent(raw domain.RawExtraction, keys ...string) any {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if val != "" {
				return val
			}
		case []any:
			if len(val) > 0 {
				return val
			}
		case []string:
			if len(val) > 0 {
				return val
			}
		default:
			return val
		}
	}
	return nil
}

// toInvestorList coerces a value into a list of investor names, or nil
// if the value is not list-shaped or is empty.
func toInvestorList(v any) []string {
	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return nil
		}
		return val
	case []any:
		if len(val) == 0 {
			return nil
		}
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, asString(item))
		}
		return out
	default:
		return nil
	}
}

// scalarOrSentinel renders a scalar field, substituting the sentinel
// for anything null-ish.
func scalarOrSentinel(v any) string {
	if v == nil {
		return domain.NotSpecified
	}
	s := strings.TrimSpace(asString(v))
	if s == "" || strings.EqualFold(s, "null") {
		return domain.NotSpecified
	}
	return s
}

// listOrNil drops null-ish list values so the sink can substitute the
// sentinel. A list whose only element is "null" counts as null-ish.
func listOrNil(list []string) []string {
	cleaned := make([]string, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" || strings.EqualFold(item, "null") {
			continue
		}
		cleaned = append(cleaned, item)
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

// asString renders any JSON scalar as a string. Models occasionally
// return numbers where strings were asked for.
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing ".0".
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
