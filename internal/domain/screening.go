package domain

// MatchKind tags which field family produced a watchlist match.
type MatchKind string

const (
	MatchName    MatchKind = "name"
	MatchID      MatchKind = "id"
	MatchAddress MatchKind = "address"
	MatchOther   MatchKind = "other"
)

// MatchStrength distinguishes high-confidence from low-confidence watchlist
// matches. Both count as a match; downstream treats full matches as hard
// hits and partial matches as review candidates.
type MatchStrength string

const (
	StrengthNone    MatchStrength = ""
	StrengthPartial MatchStrength = "partial"
	StrengthFull    MatchStrength = "full"
)

// EntryDetail carries the matched watchlist entry's display fields. Attached
// only when the match cleared a threshold.
type EntryDetail struct {
	Type     EntityType `json:"type,omitempty"`
	Programs []string   `json:"programs,omitempty"`
	Remarks  string     `json:"remarks,omitempty"`
	IDs      []string   `json:"ids,omitempty"`
}

// MatchResult is the outcome of screening one identity against the
// watchlist. Score is always reported; MatchedName and Detail are present
// only when IsMatch is true.
type MatchResult struct {
	Name        string        `json:"name"`
	IsMatch     bool          `json:"is_match"`
	Score       float64       `json:"match_score"`
	MatchedName string        `json:"matched_name,omitempty"`
	Kind        MatchKind     `json:"match_type,omitempty"`
	Strength    MatchStrength `json:"strength,omitempty"`
	Detail      *EntryDetail  `json:"details,omitempty"`
}

// Disposition is the compliance status assigned to a screened transaction.
type Disposition string

const (
	DispositionClear      Disposition = "clear"
	DispositionProcessing Disposition = "processing"
	DispositionFlagged    Disposition = "flagged"
)

// dispositionRank orders dispositions by severity for combining parties.
var dispositionRank = map[Disposition]int{
	DispositionClear:      0,
	DispositionProcessing: 1,
	DispositionFlagged:    2,
}

// WorseDisposition returns the more severe of two dispositions.
func WorseDisposition(a, b Disposition) Disposition {
	if dispositionRank[b] > dispositionRank[a] {
		return b
	}
	return a
}

// Status pairs a disposition with how it was set. Once Manual is true, an
// automatic re-derivation must not overwrite the disposition until the
// override is explicitly cleared.
type Status struct {
	Disposition Disposition `json:"disposition"`
	Manual      bool        `json:"manual_override"`
}

// Apply returns the status after an automatic re-derivation. A manual status
// is returned unchanged.
func (s Status) Apply(auto Disposition) Status {
	if s.Manual {
		return s
	}
	return Status{Disposition: auto}
}

// Override returns a manual status carrying the caller's explicit
// disposition.
func (s Status) Override(d Disposition) Status {
	return Status{Disposition: d, Manual: true}
}

// Reset clears the override and adopts the given automatic disposition.
func (s Status) Reset(auto Disposition) Status {
	return Status{Disposition: auto}
}
