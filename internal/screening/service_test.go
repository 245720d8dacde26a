package screening

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"swiftscreen/internal/domain"
	"swiftscreen/internal/watchlist"
	"swiftscreen/pkg/platform/sentinel"
)

type stubProvider struct {
	snap *watchlist.Snapshot
	err  error
}

func (p *stubProvider) Snapshot(context.Context) (*watchlist.Snapshot, error) {
	return p.snap, p.err
}

type ScreenSuite struct {
	suite.Suite
	ctx context.Context
}

func TestScreenSuite(t *testing.T) {
	suite.Run(t, new(ScreenSuite))
}

func (s *ScreenSuite) SetupTest() {
	s.ctx = context.Background()
}

func snapshotOf(names ...string) *watchlist.Snapshot {
	entries := make([]domain.WatchlistEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, domain.WatchlistEntry{
			Name: n,
			Type: domain.EntityOrganization,
		})
	}
	return &watchlist.Snapshot{Entries: entries}
}

func blacklistOf(names ...string) []*domain.BlacklistRecord {
	records := make([]*domain.BlacklistRecord, 0, len(names))
	for _, n := range names {
		records = append(records, &domain.BlacklistRecord{
			ID:    uuid.New(),
			Names: domain.BlacklistNames{FullEn: n},
		})
	}
	return records
}

func (s *ScreenSuite) TestCleanPartyIsClear() {
	svc := NewService(&stubProvider{snap: snapshotOf("Global Terror Front")})
	party := &domain.Party{Name: "Friendly Bakery"}

	result, err := svc.Screen(s.ctx, party, nil)
	s.Require().NoError(err)
	s.Equal(domain.DispositionClear, result.Disposition)
	s.True(result.WatchlistChecked)
	s.Equal(1, result.IdentitiesCollected)
	s.Equal(1, result.IdentitiesScreened)
	s.Empty(result.BlacklistHits)
}

func (s *ScreenSuite) TestExactWatchlistMatchFlags() {
	svc := NewService(&stubProvider{snap: snapshotOf("Global Terror Front")})
	party := &domain.Party{Name: "Global Terror Front"}

	result, err := svc.Screen(s.ctx, party, nil)
	s.Require().NoError(err)
	s.Equal(domain.DispositionFlagged, result.Disposition)

	match := result.Results["Global Terror Front"]
	s.True(match.IsMatch)
	s.Equal(1.0, match.Score)
	s.Equal(domain.StrengthFull, match.Strength)
	s.Require().NotNil(match.Detail)
}

func (s *ScreenSuite) TestNearMatchGoesToProcessing() {
	svc := NewService(&stubProvider{snap: snapshotOf("Acme Trading House Ltd")})
	party := &domain.Party{Name: "Acme Trading House"}

	result, err := svc.Screen(s.ctx, party, nil)
	s.Require().NoError(err)
	s.Equal(domain.DispositionProcessing, result.Disposition)
}

func (s *ScreenSuite) TestBlacklistOverridesWatchlist() {
	svc := NewService(&stubProvider{snap: snapshotOf("Unrelated Entry")})
	party := &domain.Party{Name: "Acme Trading House"}

	result, err := svc.Screen(s.ctx, party, blacklistOf("Acme Trading House"))
	s.Require().NoError(err)
	s.Equal(domain.DispositionFlagged, result.Disposition)

	hit, ok := result.BlacklistHits["Acme Trading House"]
	s.Require().True(ok)
	s.Equal(domain.BlacklistMatchFull, hit.Type)
}

func (s *ScreenSuite) TestOwnershipIdentitiesAreScreened() {
	svc := NewService(&stubProvider{snap: snapshotOf("Hidden Owner")})
	party := &domain.Party{
		Name: "Front Company",
		Owners: []domain.OwnershipNode{
			{Owner: "Holding BV", IsCompany: true, Percentage: 100, Company: &domain.CompanyDetails{
				Founders: []domain.OwnershipNode{
					{Owner: "Hidden Owner", Percentage: 100},
				},
			}},
		},
	}

	result, err := svc.Screen(s.ctx, party, nil)
	s.Require().NoError(err)
	s.Equal(domain.DispositionFlagged, result.Disposition)
	s.Contains(result.Results, "Hidden Owner")
	s.Equal(1.0, result.Results["Hidden Owner"].Score)
}

func (s *ScreenSuite) TestDuplicateIdentitiesScreenedOnce() {
	svc := NewService(&stubProvider{snap: snapshotOf()})
	party := &domain.Party{
		Name:      "Acme",
		Executive: "Acme",
		Owners: []domain.OwnershipNode{
			{Owner: "Acme"},
			{Owner: "Jane Doe"},
		},
	}

	result, err := svc.Screen(s.ctx, party, nil)
	s.Require().NoError(err)
	s.Equal(2, result.IdentitiesCollected)
	s.Equal(2, result.IdentitiesScreened)
	s.Len(result.Results, 2)
}

func (s *ScreenSuite) TestWatchlistUnavailableDegrades() {
	provider := &stubProvider{
		err: fmt.Errorf("refresh failed: %w", sentinel.ErrListUnavailable),
	}
	svc := NewService(provider)
	party := &domain.Party{Name: "Acme Trading House"}

	result, err := svc.Screen(s.ctx, party, blacklistOf("Acme Trading House"))
	s.Require().NoError(err)
	s.False(result.WatchlistChecked)
	s.Equal(domain.DispositionFlagged, result.Disposition)

	// The watchlist result is present but empty for every identity.
	match := result.Results["Acme Trading House"]
	s.False(match.IsMatch)
	s.Zero(match.Score)
}

func (s *ScreenSuite) TestUnexpectedSnapshotErrorFails() {
	provider := &stubProvider{err: fmt.Errorf("boom")}
	svc := NewService(provider)

	_, err := svc.Screen(s.ctx, &domain.Party{Name: "Acme"}, nil)
	s.Error(err)
}

func (s *ScreenSuite) TestNilPartyScreensNothing() {
	svc := NewService(&stubProvider{snap: snapshotOf("Anything")})

	result, err := svc.Screen(s.ctx, nil, nil)
	s.Require().NoError(err)
	s.Equal(domain.DispositionClear, result.Disposition)
	s.Zero(result.IdentitiesCollected)
	s.Empty(result.Results)
}
