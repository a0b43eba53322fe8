package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
)

// Storage keys for the two persisted entries.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// LoginAPI is the slice of the API client the auth service needs.
type LoginAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
}

// Service owns the authenticated-identity lifecycle for the running client
// session. The authenticated flag and cached user are initialised once from
// storage at construction and mutated only by Login and Logout, keeping
// storage and in-memory state synchronized by construction.
//
// Unlike the session store, Login surfaces its failure to the caller: the
// login screen needs it synchronously for field-level feedback. Logout and
// the predicates are total over local state and never fail externally.
type Service struct {
	api     LoginAPI
	storage Storage
	logger  *zap.Logger

	mu            sync.RWMutex
	authenticated bool
	user          *models.AuthUser
}

// NewService constructs the auth service, restoring any persisted session.
func NewService(api LoginAPI, storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{api: api, storage: storage, logger: logger}
	s.authenticated = s.hasToken()
	s.user = s.storedUser()
	return s
}

// Login authenticates with the backend, persists the token and user, and
// flips the reactive flags. The underlying request failure propagates
// unchanged; nothing is persisted on failure.
func (s *Service) Login(ctx context.Context, credentials models.LoginRequest) error {
	res, err := s.api.Login(ctx, credentials)
	if err != nil {
		return err
	}

	user := models.AuthUser{
		Username: res.Username,
		Role:     res.Role,
		UserID:   res.UserID,
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Set(TokenKey, res.Token); err != nil {
		return err
	}
	if err := s.storage.Set(UserKey, string(encoded)); err != nil {
		return err
	}

	s.mu.Lock()
	s.authenticated = true
	s.user = &user
	s.mu.Unlock()

	s.logger.Debug("logged in", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return nil
}

// Logout clears both storage entries and resets the flags to the
// unauthenticated state. It never fails externally.
func (s *Service) Logout() {
	if err := s.storage.Remove(TokenKey); err != nil {
		s.logger.Warn("failed to clear stored token", zap.Error(err))
	}
	if err := s.storage.Remove(UserKey); err != nil {
		s.logger.Warn("failed to clear stored user", zap.Error(err))
	}

	s.mu.Lock()
	s.authenticated = false
	s.user = nil
	s.mu.Unlock()
}

// Token returns the persisted bearer token, empty when absent. It satisfies
// api.TokenSource so the client attaches it to authenticated requests.
func (s *Service) Token() string {
	token, err := s.storage.Get(TokenKey)
	if err != nil {
		return ""
	}
	return token
}

// IsAuthenticated reports whether a token is present. It does not by itself
// imply the token is unexpired; see IsTokenExpired.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// CurrentUser returns the cached identity, or nil when unauthenticated.
func (s *Service) CurrentUser() *models.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	clone := *s.user
	return &clone
}

// IsTokenExpired decodes the token's expiry claim without verifying the
// signature: the claim is trusted only to decide whether to prompt a fresh
// login. Absent or undecodable tokens count as expired; a token without an
// expiry claim does not.
func (s *Service) IsTokenExpired() bool {
	token := s.Token()
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if expiry == nil {
		return false
	}
	return !time.Now().Before(expiry.Time)
}

// HasRole reports whether the cached identity carries the given role.
func (s *Service) HasRole(role models.UserRole) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == role
}

// HasAnyRole reports whether the cached identity carries any of the roles.
func (s *Service) HasAnyRole(roles ...models.UserRole) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return false
	}
	for _, role := range roles {
		if s.user.Role == role {
			return true
		}
	}
	return false
}

func (s *Service) hasToken() bool {
	_, err := s.storage.Get(TokenKey)
	return err == nil
}

func (s *Service) storedUser() *models.AuthUser {
	raw, err := s.storage.Get(UserKey)
	if err != nil {
		return nil
	}
	var user models.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}
