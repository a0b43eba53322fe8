package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	appErrors "github.com/taleemtrack/taleemtrack-cli/pkg/errors"
)

// SessionAPI is the remote collection the store mediates. *api.Client
// satisfies it; tests substitute a stub.
type SessionAPI interface {
	ListSessions(ctx context.Context) ([]models.AcademicSession, error)
	GetSession(ctx context.Context, id int64) (*models.AcademicSession, error)
	GetCurrentSession(ctx context.Context) (*models.AcademicSession, error)
	CreateSession(ctx context.Context, req models.SessionRequest) (*models.AcademicSession, error)
	UpdateSession(ctx context.Context, id int64, req models.SessionRequest) (*models.AcademicSession, error)
	SetCurrentSession(ctx context.Context, id int64) (*models.AcademicSession, error)
	DeleteSession(ctx context.Context, id int64) error
}

// state is the full observable state of the session collection. It is only
// ever replaced wholesale under the store mutex, so readers never observe a
// torn update.
type state struct {
	sessions        []models.AcademicSession
	selectedSession *models.AcademicSession
	currentSession  *models.AcademicSession
	isLoading       bool
	errorMessage    string
}

// SessionStore is the authoritative client-side cache of the academic
// session collection. All mutation goes through its methods; UI code reads
// snapshots and never holds an independent copy.
//
// Each remote operation performs exactly one network call and applies
// exactly one state patch on completion. Failures are absorbed into the
// error message rather than returned: screens poll ErrorMessage/IsLoading
// instead of handling call-site errors. Completion order wins when callers
// overlap invocations of the same operation; serialising mutations per
// entity remains the caller's responsibility.
type SessionStore struct {
	api    SessionAPI
	logger *zap.Logger

	mu    sync.RWMutex
	state state
}

// NewSessionStore creates a store over the given API client.
func NewSessionStore(api SessionAPI, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{api: api, logger: logger}
}

// patch mutates the state atomically. Every observable transition funnels
// through here.
func (s *SessionStore) patch(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// begin marks a remote operation in flight: loading on, previous error
// cleared. Prior data stays visible while the request runs.
func (s *SessionStore) begin() {
	s.patch(func(st *state) {
		st.isLoading = true
		st.errorMessage = ""
	})
}

// fail records a failure without disturbing previously loaded data.
func (s *SessionStore) fail(op string, err error) {
	s.logger.Debug("session store operation failed", zap.String("op", op), zap.Error(err))
	message := appErrors.FromError(err).Message
	s.patch(func(st *state) {
		st.isLoading = false
		st.errorMessage = message
	})
}

// Sessions returns a snapshot of the collection in server order.
func (s *SessionStore) Sessions() []models.AcademicSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AcademicSession, len(s.state.sessions))
	copy(out, s.state.sessions)
	return out
}

// SelectedSession returns the selected session, or nil.
func (s *SessionStore) SelectedSession() *models.AcademicSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.state.selectedSession)
}

// CurrentSession returns the session flagged current, or nil.
func (s *SessionStore) CurrentSession() *models.AcademicSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.state.currentSession)
}

// IsLoading reports whether a remote operation is in flight.
func (s *SessionStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.isLoading
}

// ErrorMessage returns the stored failure message, empty when none.
func (s *SessionStore) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.errorMessage
}

// SessionCount is derived from the collection on every read.
func (s *SessionStore) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.sessions)
}

// HasCurrentSession is derived from the current pointer on every read.
func (s *SessionStore) HasCurrentSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.currentSession != nil
}

// LoadSessions fetches the full collection, replacing it wholesale on
// success. On failure the prior collection stays on screen and the error
// message is set.
func (s *SessionStore) LoadSessions(ctx context.Context) {
	s.begin()
	sessions, err := s.api.ListSessions(ctx)
	if err != nil {
		s.fail("load_sessions", err)
		return
	}
	s.patch(func(st *state) {
		st.sessions = sessions
		st.isLoading = false
	})
}

// LoadCurrentSession fetches the designated current session. Absence of a
// current session is an expected state, not a failure: any error resolves
// to no current session without touching the error message.
func (s *SessionStore) LoadCurrentSession(ctx context.Context) {
	s.begin()
	current, err := s.api.GetCurrentSession(ctx)
	if err != nil {
		s.patch(func(st *state) {
			st.currentSession = nil
			st.isLoading = false
		})
		return
	}
	s.patch(func(st *state) {
		st.currentSession = current
		st.isLoading = false
	})
}

// CreateSession posts a new record, appending the server's copy to the
// collection. When the new record is current it also becomes the current
// pointer; the previously current element keeps its local flag until the
// next full reload or set-current, mirroring the server-side reconciliation.
func (s *SessionStore) CreateSession(ctx context.Context, req models.SessionRequest) {
	s.begin()
	created, err := s.api.CreateSession(ctx, req)
	if err != nil {
		s.fail("create_session", err)
		return
	}
	s.patch(func(st *state) {
		st.sessions = append(st.sessions, *created)
		st.isLoading = false
		if created.IsCurrent {
			st.currentSession = created
		}
	})
}

// UpdateSession replaces the matching element in place, preserving its
// position. The selected and current pointers follow the update when they
// reference the same record.
func (s *SessionStore) UpdateSession(ctx context.Context, id int64, req models.SessionRequest) {
	s.begin()
	updated, err := s.api.UpdateSession(ctx, id, req)
	if err != nil {
		s.fail("update_session", err)
		return
	}
	s.patch(func(st *state) {
		for i := range st.sessions {
			if st.sessions[i].ID == id {
				st.sessions[i] = *updated
			}
		}
		st.isLoading = false
		if st.selectedSession != nil && st.selectedSession.ID == id {
			st.selectedSession = updated
		}
		if updated.IsCurrent {
			st.currentSession = updated
		}
	})
}

// SetCurrentSession flags one session as current. This is the one operation
// that reconciles the IsCurrent flag across the whole collection, keeping
// the at-most-one-current invariant visible locally.
func (s *SessionStore) SetCurrentSession(ctx context.Context, id int64) {
	s.begin()
	current, err := s.api.SetCurrentSession(ctx, id)
	if err != nil {
		s.fail("set_current_session", err)
		return
	}
	s.patch(func(st *state) {
		for i := range st.sessions {
			st.sessions[i].IsCurrent = st.sessions[i].ID == id
		}
		st.currentSession = current
		st.isLoading = false
	})
}

// DeleteSession removes the matching element. Selected and current pointers
// referencing the deleted record are cleared. An ID absent from the
// collection leaves it unchanged.
func (s *SessionStore) DeleteSession(ctx context.Context, id int64) {
	s.begin()
	if err := s.api.DeleteSession(ctx, id); err != nil {
		s.fail("delete_session", err)
		return
	}
	s.patch(func(st *state) {
		filtered := st.sessions[:0]
		for _, session := range st.sessions {
			if session.ID != id {
				filtered = append(filtered, session)
			}
		}
		st.sessions = filtered
		st.isLoading = false
		if st.selectedSession != nil && st.selectedSession.ID == id {
			st.selectedSession = nil
		}
		if st.currentSession != nil && st.currentSession.ID == id {
			st.currentSession = nil
		}
	})
}

// SelectSession is a pure local state update; pass nil to clear.
func (s *SessionStore) SelectSession(session *models.AcademicSession) {
	s.patch(func(st *state) {
		st.selectedSession = cloneSession(session)
	})
}

// ClearError resets the stored error message.
func (s *SessionStore) ClearError() {
	s.patch(func(st *state) {
		st.errorMessage = ""
	})
}

func cloneSession(session *models.AcademicSession) *models.AcademicSession {
	if session == nil {
		return nil
	}
	clone := *session
	return &clone
}
