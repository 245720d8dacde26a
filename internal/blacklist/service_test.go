package blacklist

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"swiftscreen/internal/audit"
	"swiftscreen/internal/domain"
	"swiftscreen/pkg/platform/sentinel"
)

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Emit(_ context.Context, e audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingAuditor) actions() []audit.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]audit.Action, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *InMemoryStore
	auditor *recordingAuditor
	svc     *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryStore()
	s.auditor = &recordingAuditor{}
	svc, err := NewService(s.store, WithAuditor(s.auditor))
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ServiceSuite) TestNewRequiresStore() {
	_, err := NewService(nil)
	s.Error(err)
}

func (s *ServiceSuite) TestAddAssignsIdentity() {
	rec, err := s.svc.Add(s.ctx, Input{
		INN:   "7707083893",
		Names: domain.BlacklistNames{FullEn: "Sberbank of Russia"},
	})
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, rec.ID)
	s.False(rec.CreatedAt.IsZero())

	stored, err := s.store.FindByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.INN, stored.INN)
	s.Equal([]audit.Action{audit.ActionBlacklistUpdated}, s.auditor.actions())
}

func (s *ServiceSuite) TestAddRejectsEmptyInput() {
	_, err := s.svc.Add(s.ctx, Input{})
	s.Error(err)
	s.Empty(s.auditor.actions())
}

func (s *ServiceSuite) TestAddRejectsDuplicateINN() {
	_, err := s.svc.Add(s.ctx, Input{INN: "1234567890"})
	s.Require().NoError(err)

	_, err = s.svc.Add(s.ctx, Input{INN: "1234567890"})
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *ServiceSuite) TestAddAllowsMissingINN() {
	_, err := s.svc.Add(s.ctx, Input{Names: domain.BlacklistNames{FullEn: "Acme"}})
	s.Require().NoError(err)
	_, err = s.svc.Add(s.ctx, Input{Names: domain.BlacklistNames{FullEn: "Globex"}})
	s.NoError(err)
}

func (s *ServiceSuite) TestUpdatePreservesCreatedAt() {
	rec, err := s.svc.Add(s.ctx, Input{Names: domain.BlacklistNames{FullEn: "Acme"}})
	s.Require().NoError(err)

	updated, err := s.svc.Update(s.ctx, rec.ID, Input{
		INN:   "9999999999",
		Names: domain.BlacklistNames{FullEn: "Acme Holdings"},
		Notes: "renamed",
	})
	s.Require().NoError(err)
	s.Equal(rec.CreatedAt, updated.CreatedAt)
	s.Equal("Acme Holdings", updated.Names.FullEn)
	s.Equal("9999999999", updated.INN)
}

func (s *ServiceSuite) TestUpdateKeepingOwnINN() {
	rec, err := s.svc.Add(s.ctx, Input{INN: "1234567890"})
	s.Require().NoError(err)

	_, err = s.svc.Update(s.ctx, rec.ID, Input{INN: "1234567890", Notes: "still listed"})
	s.NoError(err)
}

func (s *ServiceSuite) TestUpdateRejectsForeignINN() {
	_, err := s.svc.Add(s.ctx, Input{INN: "1111111111"})
	s.Require().NoError(err)
	rec, err := s.svc.Add(s.ctx, Input{INN: "2222222222"})
	s.Require().NoError(err)

	_, err = s.svc.Update(s.ctx, rec.ID, Input{INN: "1111111111"})
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *ServiceSuite) TestUpdateUnknownRecord() {
	_, err := s.svc.Update(s.ctx, uuid.New(), Input{INN: "1234567890"})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ServiceSuite) TestRemove() {
	rec, err := s.svc.Add(s.ctx, Input{Names: domain.BlacklistNames{FullEn: "Acme"}})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Remove(s.ctx, rec.ID))
	_, err = s.svc.Get(s.ctx, rec.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.svc.Remove(s.ctx, rec.ID), sentinel.ErrNotFound)
}

func (s *ServiceSuite) TestMatchUsesStoredRecords() {
	_, err := s.svc.Add(s.ctx, Input{
		INN:   "7707083893",
		Names: domain.BlacklistNames{FullEn: "Sberbank of Russia"},
	})
	s.Require().NoError(err)

	s.Run("by name", func() {
		got, err := s.svc.Match(s.ctx, "Sberbank of Russia")
		s.Require().NoError(err)
		s.Require().NotNil(got)
		s.Equal(domain.BlacklistMatchFull, got.Type)
	})

	s.Run("by inn", func() {
		got, err := s.svc.Match(s.ctx, "7707083893")
		s.Require().NoError(err)
		s.Require().NotNil(got)
		s.Equal(domain.BlacklistMatchINN, got.Type)
	})

	s.Run("no match", func() {
		got, err := s.svc.Match(s.ctx, "Completely Unrelated Name")
		s.Require().NoError(err)
		s.Nil(got)
	})
}
