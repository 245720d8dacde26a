package domain

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistNames holds the six localized name fields of a blacklist record.
// The matcher checks them in declaration order; that order is part of the
// matching contract.
type BlacklistNames struct {
	FullEn  string `json:"full_name_en"`
	FullRu  string `json:"full_name_ru"`
	ShortEn string `json:"short_name_en"`
	ShortRu string `json:"short_name_ru"`
	AbbrEn  string `json:"abbreviation_en"`
	AbbrRu  string `json:"abbreviation_ru"`
}

// BlacklistRecord is an internally maintained refusal-list entry. INN is the
// unique business key when present; records without an INN are matched by
// name only.
type BlacklistRecord struct {
	ID        uuid.UUID      `json:"id"`
	INN       string         `json:"inn,omitempty"`
	Names     BlacklistNames `json:"names"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// BlacklistMatchType tags which field family produced a blacklist match.
type BlacklistMatchType string

const (
	BlacklistMatchFull         BlacklistMatchType = "full"
	BlacklistMatchShort        BlacklistMatchType = "short"
	BlacklistMatchAbbreviation BlacklistMatchType = "abbreviation"
	BlacklistMatchINN          BlacklistMatchType = "inn"
)

// MatchLanguage identifies the language of the matched field. INN matches
// report "numeric" since identifiers carry no language.
type MatchLanguage string

const (
	LanguageEn      MatchLanguage = "en"
	LanguageRu      MatchLanguage = "ru"
	LanguageNumeric MatchLanguage = "numeric"
)

// BlacklistMatch reports a hit against the internal blacklist. Absence of a
// match is represented by a nil *BlacklistMatch, not an error.
type BlacklistMatch struct {
	MatchedName string             `json:"matched_name"`
	Type        BlacklistMatchType `json:"match_type"`
	Language    MatchLanguage      `json:"language"`
	Record      *BlacklistRecord   `json:"record,omitempty"`
}
