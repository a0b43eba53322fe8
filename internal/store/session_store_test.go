package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	appErrors "github.com/taleemtrack/taleemtrack-cli/pkg/errors"
)

type sessionAPIStub struct {
	sessions []models.AcademicSession
	current  *models.AcademicSession
	err      error

	nextID    int64
	deleteIDs []int64
}

func (s *sessionAPIStub) ListSessions(ctx context.Context) ([]models.AcademicSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.AcademicSession, len(s.sessions))
	copy(out, s.sessions)
	return out, nil
}

func (s *sessionAPIStub) GetSession(ctx context.Context, id int64) (*models.AcademicSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, session := range s.sessions {
		if session.ID == id {
			session := session
			return &session, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "academic session not found")
}

func (s *sessionAPIStub) GetCurrentSession(ctx context.Context) (*models.AcademicSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.current == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no current academic session is set")
	}
	current := *s.current
	return &current, nil
}

func (s *sessionAPIStub) CreateSession(ctx context.Context, req models.SessionRequest) (*models.AcademicSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	session := models.AcademicSession{
		ID:        s.nextID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsCurrent: req.IsCurrent,
	}
	s.sessions = append(s.sessions, session)
	return &session, nil
}

func (s *sessionAPIStub) UpdateSession(ctx context.Context, id int64, req models.SessionRequest) (*models.AcademicSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	updated := models.AcademicSession{
		ID:        id,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsCurrent: req.IsCurrent,
	}
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions[i] = updated
		}
	}
	return &updated, nil
}

func (s *sessionAPIStub) SetCurrentSession(ctx context.Context, id int64) (*models.AcademicSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.sessions {
		s.sessions[i].IsCurrent = s.sessions[i].ID == id
		if s.sessions[i].ID == id {
			current := s.sessions[i]
			s.current = &current
		}
	}
	if s.current == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "academic session not found")
	}
	return s.current, nil
}

func (s *sessionAPIStub) DeleteSession(ctx context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleteIDs = append(s.deleteIDs, id)
	return nil
}

func fixtureSessions() []models.AcademicSession {
	return []models.AcademicSession{
		{ID: 1, Name: "2023-2024", StartDate: models.NewDate(2023, 4, 1), EndDate: models.NewDate(2024, 3, 31), IsCurrent: true},
		{ID: 2, Name: "2024-2025", StartDate: models.NewDate(2024, 4, 1), EndDate: models.NewDate(2025, 3, 31)},
		{ID: 3, Name: "2025-2026", StartDate: models.NewDate(2025, 4, 1), EndDate: models.NewDate(2026, 3, 31)},
	}
}

func TestLoadSessionsReplacesCollection(t *testing.T) {
	stub := &sessionAPIStub{sessions: fixtureSessions()}
	st := NewSessionStore(stub, nil)

	st.LoadSessions(context.Background())

	assert.False(t, st.IsLoading())
	assert.Empty(t, st.ErrorMessage())
	assert.Equal(t, 3, st.SessionCount())
	assert.Equal(t, st.SessionCount(), len(st.Sessions()))
}

func TestLoadSessionsFailureKeepsPriorData(t *testing.T) {
	stub := &sessionAPIStub{sessions: fixtureSessions()}
	st := NewSessionStore(stub, nil)
	st.LoadSessions(context.Background())
	require.Equal(t, 3, st.SessionCount())

	stub.err = appErrors.Clone(appErrors.ErrUnavailable, "cannot reach the TaleemTrack server")
	st.LoadSessions(context.Background())

	assert.False(t, st.IsLoading())
	assert.Equal(t, "cannot reach the TaleemTrack server", st.ErrorMessage())
	assert.Equal(t, 3, st.SessionCount(), "transient failure must not clear the displayed collection")
}

func TestLoadCurrentSessionAbsenceIsNotAnError(t *testing.T) {
	stub := &sessionAPIStub{sessions: fixtureSessions()}
	st := NewSessionStore(stub, nil)

	st.LoadCurrentSession(context.Background())

	assert.Nil(t, st.CurrentSession())
	assert.False(t, st.HasCurrentSession())
	assert.Empty(t, st.ErrorMessage())
	assert.False(t, st.IsLoading())
}

func TestLoadCurrentSession(t *testing.T) {
	sessions := fixtureSessions()
	stub := &sessionAPIStub{sessions: sessions, current: &sessions[0]}
	st := NewSessionStore(stub, nil)

	st.LoadCurrentSession(context.Background())

	require.True(t, st.HasCurrentSession())
	assert.Equal(t, int64(1), st.CurrentSession().ID)
}

func TestCreateSessionAppends(t *testing.T) {
	stub := &sessionAPIStub{nextID: 10}
	st := NewSessionStore(stub, nil)

	st.CreateSession(context.Background(), models.SessionRequest{
		Name:      "2024-2025",
		StartDate: models.NewDate(2024, 4, 1),
		EndDate:   models.NewDate(2025, 3, 31),
	})

	require.Equal(t, 1, st.SessionCount())
	assert.Equal(t, "2024-2025", st.Sessions()[0].Name)
	assert.Nil(t, st.CurrentSession())
	assert.Empty(t, st.ErrorMessage())
}

func TestCreateCurrentSessionLeavesPreviousFlag(t *testing.T) {
	stub := &sessionAPIStub{sessions: nil, nextID: 10}
	st := NewSessionStore(stub, nil)
	st.LoadSessions(context.Background())

	// Pre-existing current entry loaded from the server.
	stub.sessions = fixtureSessions()
	st.LoadSessions(context.Background())

	st.CreateSession(context.Background(), models.SessionRequest{
		Name:      "2026-2027",
		StartDate: models.NewDate(2026, 4, 1),
		EndDate:   models.NewDate(2027, 3, 31),
		IsCurrent: true,
	})

	require.True(t, st.HasCurrentSession())
	assert.Equal(t, "2026-2027", st.CurrentSession().Name)

	// Only set-current reconciles the flag across the collection; the
	// previously current element keeps its stale local flag until then.
	flagged := 0
	for _, s := range st.Sessions() {
		if s.IsCurrent {
			flagged++
		}
	}
	assert.Equal(t, 2, flagged)
}

func TestUpdateSessionReplacesInPlace(t *testing.T) {
	stub := &sessionAPIStub{sessions: fixtureSessions()}
	st := NewSessionStore(stub, nil)
	st.LoadSessions(context.Background())

	second := st.Sessions()[1]
	st.SelectSession(&second)

	st.UpdateSession(context.Background(), 2, models.SessionRequest{
		Name:      "2024-2025 (revised)",
		StartDate: models.NewDate(2024, 4, 15),
		EndDate:   models.NewDate(2025, 3, 31),
	})

	sessions := st.Sessions()
	require.Equal(t, 3, len(sessions))
	assert.Equal(t, int64(2), sessions[1].ID, "position must be preserved")
	assert.Equal(t, "2024-2025 (revised)", sessions[1].Name)

	require.NotNil(t, st.SelectedSession())
	assert.Equal(t, "2024-2025 (revised)", st.SelectedSession().Name, "selection follows the update")
}

func TestSetCurrentSessionReconcilesFlags(t *testing.T) {
	stub := &sessionAPIStub{sessions: fixtureSessions()}
	st := NewSessionStore(stub, nil)
	st.LoadSessions(context.Background())

	st.SetCurrentSession(context.Background(), 2)

	require.True(t, st.HasCurrentSession())
	assert.Equal(t, int64(2), st.CurrentSession().ID)

	flagged := 0
	for _, s := range st.Sessions() {
		if s.IsCurrent {
			flagged++
			assert.Equal(t, int64(2), s.ID)
		}
	}
	assert.Equal(t, 1, flagged, "exactly one session carries the current flag")
}

func TestDeleteSessionClearsReferences(t *testing.T) {
	sessions := fixtureSessions()
	stub := &sessionAPIStub{sessions: sessions, current: &sessions[0]}
	st := NewSessionStore(stub, nil)
	st.LoadSessions(context.Background())
	st.LoadCurrentSession(context.Background())

	first := st.Sessions()[0]
	st.SelectSession(&first)

	st.DeleteSession(context.Background(), 1)

	assert.Equal(t, 2, st.SessionCount())
	assert.Nil(t, st.SelectedSession())
	assert.Nil(t, st.CurrentSession())
}

func TestDeleteUnknownSessionLeavesCollectionUnchanged(t *testing.T) {
	stub := &sessionAPIStub{sessions: fixtureSessions()}
	st := NewSessionStore(stub, nil)
	st.LoadSessions(context.Background())

	st.DeleteSession(context.Background(), 999)

	assert.Equal(t, 3, st.SessionCount())
	assert.Empty(t, st.ErrorMessage())
}

func TestSelectSessionIsLocal(t *testing.T) {
	stub := &sessionAPIStub{sessions: fixtureSessions()}
	st := NewSessionStore(stub, nil)
	st.LoadSessions(context.Background())

	first := st.Sessions()[0]
	st.SelectSession(&first)
	require.NotNil(t, st.SelectedSession())
	assert.Equal(t, first.ID, st.SelectedSession().ID)

	st.SelectSession(nil)
	assert.Nil(t, st.SelectedSession())
}

func TestClearErrorIsIdempotent(t *testing.T) {
	stub := &sessionAPIStub{err: appErrors.Clone(appErrors.ErrInternal, "boom")}
	st := NewSessionStore(stub, nil)
	st.LoadSessions(context.Background())
	require.NotEmpty(t, st.ErrorMessage())

	st.ClearError()
	assert.Empty(t, st.ErrorMessage())
	st.ClearError()
	assert.Empty(t, st.ErrorMessage())
}

func TestSessionCountTracksCollection(t *testing.T) {
	stub := &sessionAPIStub{sessions: fixtureSessions(), nextID: 3}
	st := NewSessionStore(stub, nil)

	assert.Equal(t, len(st.Sessions()), st.SessionCount())
	st.LoadSessions(context.Background())
	assert.Equal(t, len(st.Sessions()), st.SessionCount())

	st.CreateSession(context.Background(), models.SessionRequest{
		Name:      "2026-2027",
		StartDate: models.NewDate(2026, 4, 1),
		EndDate:   models.NewDate(2027, 3, 31),
	})
	assert.Equal(t, len(st.Sessions()), st.SessionCount())

	st.DeleteSession(context.Background(), 1)
	assert.Equal(t, len(st.Sessions()), st.SessionCount())
}
