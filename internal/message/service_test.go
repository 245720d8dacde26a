package message_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"swiftscreen/internal/blacklist"
	"swiftscreen/internal/domain"
	"swiftscreen/internal/message"
	"swiftscreen/internal/screening"
	"swiftscreen/internal/watchlist"
	"swiftscreen/pkg/platform/sentinel"
	"swiftscreen/pkg/requestcontext"
)

type staticProvider struct {
	snap *watchlist.Snapshot
}

func (p *staticProvider) Snapshot(context.Context) (*watchlist.Snapshot, error) {
	return p.snap, nil
}

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	blacklist *blacklist.Service
	svc       *message.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()

	bl, err := blacklist.NewService(blacklist.NewMemoryStore())
	s.Require().NoError(err)
	s.blacklist = bl

	provider := &staticProvider{snap: &watchlist.Snapshot{
		Entries: []domain.WatchlistEntry{
			{Name: "Global Terror Front", Type: domain.EntityOrganization},
			{Name: "Shadow Broker Ltd", Type: domain.EntityOrganization},
		},
	}}
	screener := screening.NewService(provider)

	svc, err := message.NewService(message.NewMemoryStore(), screener, bl)
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ServiceSuite) input() message.Input {
	return message.Input{
		Reference: "REF-001",
		Type:      "MT103",
		Date:      time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Currency:  "EUR",
		Amount:    12500,
		Sender:    domain.Party{Name: "Friendly Bakery", BankName: "First Bank"},
		Receiver:  domain.Party{Name: "Corner Grocer", BankName: "Second Bank"},
	}
}

func (s *ServiceSuite) TestCreateCleanMessage() {
	m, err := s.svc.Create(s.ctx, s.input())
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, m.ID)
	s.Equal(domain.DispositionClear, m.Status.Disposition)
	s.False(m.Status.Manual)
	s.Contains(m.Checks, "Friendly Bakery")
	s.Contains(m.Checks, "Corner Grocer")
	s.Empty(m.BlacklistHits)
}

func (s *ServiceSuite) TestCreateStampsRequestTime() {
	arrived := time.Date(2025, 6, 2, 9, 30, 0, 0, time.FixedZone("MSK", 3*60*60))
	ctx := requestcontext.WithTime(s.ctx, arrived)

	m, err := s.svc.Create(ctx, s.input())
	s.Require().NoError(err)
	s.Equal(arrived.UTC(), m.CreatedAt)
}

func (s *ServiceSuite) TestCreateFlagsWatchlistedSender() {
	in := s.input()
	in.Sender.Name = "Global Terror Front"

	m, err := s.svc.Create(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(domain.DispositionFlagged, m.Status.Disposition)
	s.True(m.Checks["Global Terror Front"].IsMatch)
}

func (s *ServiceSuite) TestCreateFlagsBlacklistedReceiver() {
	_, err := s.blacklist.Add(s.ctx, blacklist.Input{
		Names: domain.BlacklistNames{FullEn: "Corner Grocer"},
	})
	s.Require().NoError(err)

	m, err := s.svc.Create(s.ctx, s.input())
	s.Require().NoError(err)
	s.Equal(domain.DispositionFlagged, m.Status.Disposition)
	s.Contains(m.BlacklistHits, "Corner Grocer")
}

func (s *ServiceSuite) TestCreateValidation() {
	cases := []struct {
		name   string
		mutate func(*message.Input)
	}{
		{"missing reference", func(in *message.Input) { in.Reference = " " }},
		{"missing sender", func(in *message.Input) { in.Sender.Name = "" }},
		{"missing receiver", func(in *message.Input) { in.Receiver.Name = "" }},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			in := s.input()
			tc.mutate(&in)
			_, err := s.svc.Create(s.ctx, in)
			s.Error(err)
		})
	}
}

func (s *ServiceSuite) TestManualOverrideSurvivesRecheck() {
	m, err := s.svc.Create(s.ctx, s.input())
	s.Require().NoError(err)

	m, err = s.svc.SetStatus(s.ctx, m.ID, domain.DispositionFlagged, "analyst-7")
	s.Require().NoError(err)
	s.True(m.Status.Manual)
	s.Equal(domain.DispositionFlagged, m.Status.Disposition)

	// An automatic recheck must not clobber the analyst's call.
	m, err = s.svc.Recheck(s.ctx, m.ID, false)
	s.Require().NoError(err)
	s.True(m.Status.Manual)
	s.Equal(domain.DispositionFlagged, m.Status.Disposition)
}

func (s *ServiceSuite) TestResetOverrideAdoptsAutoStatus() {
	m, err := s.svc.Create(s.ctx, s.input())
	s.Require().NoError(err)

	m, err = s.svc.SetStatus(s.ctx, m.ID, domain.DispositionFlagged, "analyst-7")
	s.Require().NoError(err)

	m, err = s.svc.Recheck(s.ctx, m.ID, true)
	s.Require().NoError(err)
	s.False(m.Status.Manual)
	s.Equal(domain.DispositionClear, m.Status.Disposition)
}

func (s *ServiceSuite) TestRecheckPicksUpNewBlacklistEntry() {
	m, err := s.svc.Create(s.ctx, s.input())
	s.Require().NoError(err)
	s.Equal(domain.DispositionClear, m.Status.Disposition)

	_, err = s.blacklist.Add(s.ctx, blacklist.Input{
		Names: domain.BlacklistNames{FullEn: "Friendly Bakery"},
	})
	s.Require().NoError(err)

	m, err = s.svc.Recheck(s.ctx, m.ID, false)
	s.Require().NoError(err)
	s.Equal(domain.DispositionFlagged, m.Status.Disposition)
	s.Contains(m.BlacklistHits, "Friendly Bakery")
}

func (s *ServiceSuite) TestSetNotes() {
	m, err := s.svc.Create(s.ctx, s.input())
	s.Require().NoError(err)

	m, err = s.svc.SetNotes(s.ctx, m.ID, "verified with originating bank")
	s.Require().NoError(err)
	s.Equal("verified with originating bank", m.Notes)
}

func (s *ServiceSuite) TestDelete() {
	m, err := s.svc.Create(s.ctx, s.input())
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, m.ID))
	_, err = s.svc.Get(s.ctx, m.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ServiceSuite) TestListFilters() {
	first, err := s.svc.Create(s.ctx, s.input())
	s.Require().NoError(err)

	in := s.input()
	in.Reference = "REF-002"
	in.Sender.Name = "Global Terror Front"
	in.Amount = 90000
	second, err := s.svc.Create(s.ctx, in)
	s.Require().NoError(err)

	s.Run("by status", func() {
		got, err := s.svc.List(s.ctx, message.Filter{Status: domain.DispositionFlagged})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(second.ID, got[0].ID)
	})

	s.Run("by reference", func() {
		got, err := s.svc.List(s.ctx, message.Filter{Reference: "ref-001"})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(first.ID, got[0].ID)
	})

	s.Run("by amount range", func() {
		min := 50000.0
		got, err := s.svc.List(s.ctx, message.Filter{AmountMin: &min})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(second.ID, got[0].ID)
	})

	s.Run("unfiltered", func() {
		got, err := s.svc.List(s.ctx, message.Filter{})
		s.Require().NoError(err)
		s.Len(got, 2)
	})
}
