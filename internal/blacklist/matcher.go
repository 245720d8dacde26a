// Package blacklist maintains the internal refusal list and matches party
// names and identifiers against it.
package blacklist

import (
	"strings"

	"swiftscreen/internal/domain"
	"swiftscreen/internal/similarity"
)

// DefaultThreshold is the single fuzzy-match threshold for all six name
// fields, boundary inclusive.
const DefaultThreshold = 0.8

// Matcher screens names against blacklist records. Stateless; safe for
// concurrent use.
type Matcher struct {
	Threshold float64
}

// NewMatcher returns a Matcher with the default threshold.
func NewMatcher() *Matcher {
	return &Matcher{Threshold: DefaultThreshold}
}

type nameField struct {
	value string
	kind  domain.BlacklistMatchType
	lang  domain.MatchLanguage
}

// nameFields returns the record's name fields in the fixed check order.
// First match wins, so reordering changes results; keep this order stable.
func nameFields(rec *domain.BlacklistRecord) [6]nameField {
	return [6]nameField{
		{rec.Names.FullEn, domain.BlacklistMatchFull, domain.LanguageEn},
		{rec.Names.FullRu, domain.BlacklistMatchFull, domain.LanguageRu},
		{rec.Names.ShortEn, domain.BlacklistMatchShort, domain.LanguageEn},
		{rec.Names.ShortRu, domain.BlacklistMatchShort, domain.LanguageRu},
		{rec.Names.AbbrEn, domain.BlacklistMatchAbbreviation, domain.LanguageEn},
		{rec.Names.AbbrRu, domain.BlacklistMatchAbbreviation, domain.LanguageRu},
	}
}

// Match checks the query against every record: exact tax-identifier equality
// first (never fuzzy), then the six localized name fields in fixed order,
// returning on the first field at or above the threshold. Returns nil when
// nothing matches, the query is blank, or the list is empty.
func (m *Matcher) Match(query string, records []*domain.BlacklistRecord) *domain.BlacklistMatch {
	if strings.TrimSpace(query) == "" || len(records) == 0 {
		return nil
	}

	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.INN != "" && rec.INN == query {
			return &domain.BlacklistMatch{
				MatchedName: rec.INN,
				Type:        domain.BlacklistMatchINN,
				Language:    domain.LanguageNumeric,
				Record:      rec,
			}
		}
		for _, field := range nameFields(rec) {
			if field.value == "" {
				continue
			}
			if similarity.ScoreWhole(query, field.value) >= m.Threshold {
				return &domain.BlacklistMatch{
					MatchedName: field.value,
					Type:        field.kind,
					Language:    field.lang,
					Record:      rec,
				}
			}
		}
	}
	return nil
}
