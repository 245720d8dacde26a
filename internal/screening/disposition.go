package screening

import "swiftscreen/internal/domain"

// Derive reduces per-identity match results to a single disposition.
//
// Any blacklist hit flags the message outright. A watchlist score of exactly
// 1.0 also flags; any other match above threshold sends the message to
// processing for manual review. No matches at all means clear.
func Derive(results map[string]domain.MatchResult, hits map[string]domain.BlacklistMatch) domain.Disposition {
	if len(hits) > 0 {
		return domain.DispositionFlagged
	}
	disposition := domain.DispositionClear
	for _, r := range results {
		if !r.IsMatch {
			continue
		}
		if r.Score == 1.0 {
			return domain.DispositionFlagged
		}
		disposition = domain.WorseDisposition(disposition, domain.DispositionProcessing)
	}
	return disposition
}
