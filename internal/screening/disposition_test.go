package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swiftscreen/internal/domain"
)

func TestDerive(t *testing.T) {
	match := func(score float64, strength domain.MatchStrength) domain.MatchResult {
		return domain.MatchResult{IsMatch: true, Score: score, Strength: strength}
	}

	tests := []struct {
		name    string
		results map[string]domain.MatchResult
		hits    map[string]domain.BlacklistMatch
		want    domain.Disposition
	}{
		{
			name: "no matches",
			results: map[string]domain.MatchResult{
				"Acme": {Score: 0.2},
			},
			want: domain.DispositionClear,
		},
		{
			name:    "empty inputs",
			results: map[string]domain.MatchResult{},
			want:    domain.DispositionClear,
		},
		{
			name: "partial match needs review",
			results: map[string]domain.MatchResult{
				"Acme": match(0.78, domain.StrengthPartial),
			},
			want: domain.DispositionProcessing,
		},
		{
			name: "strong match needs review",
			results: map[string]domain.MatchResult{
				"Acme": match(0.9, domain.StrengthFull),
			},
			want: domain.DispositionProcessing,
		},
		{
			name: "exact match flags",
			results: map[string]domain.MatchResult{
				"Acme": match(1.0, domain.StrengthFull),
			},
			want: domain.DispositionFlagged,
		},
		{
			name: "blacklist hit flags regardless of watchlist",
			results: map[string]domain.MatchResult{
				"Acme": {Score: 0.1},
			},
			hits: map[string]domain.BlacklistMatch{
				"Acme": {Type: domain.BlacklistMatchFull},
			},
			want: domain.DispositionFlagged,
		},
		{
			name: "worst identity wins",
			results: map[string]domain.MatchResult{
				"Clean Co": {Score: 0.1},
				"Shady Co": match(0.8, domain.StrengthPartial),
			},
			want: domain.DispositionProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.results, tt.hits))
		})
	}
}
