package devserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	appErrors "github.com/taleemtrack/taleemtrack-cli/pkg/errors"
	"github.com/taleemtrack/taleemtrack-cli/pkg/response"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	if err := s.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "username and password are required"))
		return
	}

	user, ok := s.users[req.Username]
	if !ok {
		response.Error(c, appErrors.ErrInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		response.Error(c, appErrors.ErrInvalidCredentials)
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue token"))
		return
	}

	s.logger.Info("user logged in", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	response.JSON(c, http.StatusOK, models.AuthResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
		UserID:   user.ID,
	})
}

func (s *Server) handleListSessions(c *gin.Context) {
	response.JSON(c, http.StatusOK, s.repo.List())
}

func (s *Server) handleGetSession(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	session, err := s.repo.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

func (s *Server) handleGetCurrentSession(c *gin.Context) {
	session, err := s.repo.Current()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	req, ok := s.bindSessionRequest(c)
	if !ok {
		return
	}
	session, err := s.repo.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	s.logger.Info("academic session created", zap.Int64("id", session.ID), zap.String("name", session.Name))
	response.Created(c, session)
}

func (s *Server) handleUpdateSession(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req, ok := s.bindSessionRequest(c)
	if !ok {
		return
	}
	session, err := s.repo.Update(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

func (s *Server) handleSetCurrentSession(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	session, err := s.repo.SetCurrent(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	s.logger.Info("academic session set current", zap.Int64("id", session.ID))
	response.JSON(c, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := s.repo.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *Server) bindSessionRequest(c *gin.Context) (models.SessionRequest, bool) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return req, false
	}
	if err := s.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "name, startDate and endDate are required"))
		return req, false
	}
	return req, true
}

func (s *Server) issueToken(user devUser) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		Username: user.Username,
		Role:     user.Role,
		UserID:   user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid session id")
	}
	return id, nil
}
