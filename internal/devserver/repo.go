package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	appErrors "github.com/taleemtrack/taleemtrack-cli/pkg/errors"
)

// sessionRepo is the in-memory backing store for the dev server. It applies
// the same business rules as the production backend: unique names, a single
// current session, and no deleting the current one.
type sessionRepo struct {
	mu       sync.Mutex
	sessions map[int64]models.AcademicSession
	nextID   int64
}

func newSessionRepo() *sessionRepo {
	return &sessionRepo{sessions: map[int64]models.AcademicSession{}, nextID: 1}
}

// List returns the collection ordered by ID, the server-determined order.
func (r *sessionRepo) List() []models.AcademicSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.AcademicSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *sessionRepo) Get(id int64) (models.AcademicSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return models.AcademicSession{}, appErrors.Clone(appErrors.ErrNotFound, "academic session not found")
	}
	return s, nil
}

// Current returns the session flagged current; absence is a not-found
// condition, matching the production contract.
func (r *sessionRepo) Current() (models.AcademicSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if s.IsCurrent {
			return s, nil
		}
	}
	return models.AcademicSession{}, appErrors.Clone(appErrors.ErrNotFound, "no current academic session is set")
}

func (r *sessionRepo) Create(req models.SessionRequest) (models.AcademicSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkName(req.Name, 0); err != nil {
		return models.AcademicSession{}, err
	}
	if req.EndDate.Before(req.StartDate.Time) {
		return models.AcademicSession{}, appErrors.Clone(appErrors.ErrInvalidOperation, "end date cannot be before start date")
	}

	if req.IsCurrent {
		r.unsetCurrentLocked()
	}

	now := time.Now().UTC()
	session := models.AcademicSession{
		ID:        r.nextID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsCurrent: req.IsCurrent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.sessions[session.ID] = session
	return session, nil
}

func (r *sessionRepo) Update(id int64, req models.SessionRequest) (models.AcademicSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return models.AcademicSession{}, appErrors.Clone(appErrors.ErrNotFound, "academic session not found")
	}
	if err := r.checkName(req.Name, id); err != nil {
		return models.AcademicSession{}, err
	}
	if req.EndDate.Before(req.StartDate.Time) {
		return models.AcademicSession{}, appErrors.Clone(appErrors.ErrInvalidOperation, "end date cannot be before start date")
	}

	if req.IsCurrent {
		r.unsetCurrentLocked()
	}

	session.Name = req.Name
	session.StartDate = req.StartDate
	session.EndDate = req.EndDate
	session.IsCurrent = req.IsCurrent
	session.UpdatedAt = time.Now().UTC()
	r.sessions[id] = session
	return session, nil
}

func (r *sessionRepo) SetCurrent(id int64) (models.AcademicSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return models.AcademicSession{}, appErrors.Clone(appErrors.ErrNotFound, "academic session not found")
	}

	r.unsetCurrentLocked()
	session.IsCurrent = true
	session.UpdatedAt = time.Now().UTC()
	r.sessions[id] = session
	return session, nil
}

func (r *sessionRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "academic session not found")
	}
	if session.IsCurrent {
		return appErrors.Clone(appErrors.ErrInvalidOperation, "cannot delete the current academic session")
	}
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepo) checkName(name string, excludeID int64) error {
	for _, s := range r.sessions {
		if s.ID != excludeID && strings.EqualFold(s.Name, name) {
			return appErrors.Clone(appErrors.ErrConflict, "academic session with this name already exists")
		}
	}
	return nil
}

func (r *sessionRepo) unsetCurrentLocked() {
	for id, s := range r.sessions {
		if s.IsCurrent {
			s.IsCurrent = false
			r.sessions[id] = s
		}
	}
}
