package recommend

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mediashelf/collection-helper/internal/domain"
)

// ParseError means no usable structured payload could be recovered from
// the model's raw output.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse llm response: " + e.Reason
}

func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// ParseResult carries the recovered recommendations plus the number of
// malformed records that were dropped, for diagnostics.
type ParseResult struct {
	Recommendations []domain.Recommendation
	Dropped         int
}

// rawRecord mirrors the schema BuildPrompt instructs the model to emit.
// MatchScore is a pointer so a missing score is distinguishable from 0.
type rawRecord struct {
	Name       string   `json:"name"`
	Reason     string   `json:"reason"`
	MatchScore *float64 `json:"match_score"`
	Surprise   bool     `json:"surprise"`
}

type responseEnvelope struct {
	Recommendations []rawRecord `json:"recommendations"`
}

// Parse extracts the structured recommendation list from raw model output.
// Models wrap their JSON in prose or code fences; Parse scans for the
// first decodable block matching the expected shape - either the
// {"recommendations": [...]} envelope or a bare array of records.
//
// Per-record policy is lossy but non-fatal: a record missing name, reason
// or match_score is dropped and counted, the rest are kept. Out-of-range
// match scores are clamped to [0,1], not rejected. Parse fails only when
// no block is found or every record was invalid.
func Parse(raw string, category domain.Category) (ParseResult, error) {
	records, found := extractRecords(raw)
	if !found {
		return ParseResult{}, &ParseError{Reason: "no structured block found in response"}
	}

	result := ParseResult{Recommendations: make([]domain.Recommendation, 0, len(records))}
	for _, rec := range records {
		if rec.Name == "" || rec.Reason == "" || rec.MatchScore == nil {
			result.Dropped++
			continue
		}
		result.Recommendations = append(result.Recommendations, domain.Recommendation{
			Name:       rec.Name,
			Source:     sourceFor(category),
			MediaType:  category,
			Reason:     rec.Reason,
			MatchScore: clampScore(*rec.MatchScore),
			Surprise:   rec.Surprise,
		})
	}

	if len(result.Recommendations) == 0 {
		return result, &ParseError{Reason: "no record carried all required fields"}
	}
	return result, nil
}

// extractRecords finds the first well-formed JSON value in raw that yields
// at least one record. Code fences need no special casing: the scan just
// skips past them to the first brace or bracket that decodes.
func extractRecords(raw string) ([]rawRecord, bool) {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			var env responseEnvelope
			if decodeStrictPrefix(raw[i:], &env) && len(env.Recommendations) > 0 {
				return env.Recommendations, true
			}
		case '[':
			var records []rawRecord
			if decodeStrictPrefix(raw[i:], &records) && len(records) > 0 {
				return records, true
			}
		}
	}
	return nil, false
}

// decodeStrictPrefix decodes the first JSON value at the start of s,
// ignoring whatever trails it (closing fences, explanations).
func decodeStrictPrefix(s string, out any) bool {
	dec := json.NewDecoder(strings.NewReader(s))
	return dec.Decode(out) == nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func sourceFor(category domain.Category) string {
	if category == domain.CategoryBook {
		return domain.SourceSuggestedBook
	}
	return domain.SourceSuggestedVideo
}
