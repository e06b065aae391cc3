// Package auth implements the account and session lifecycle: register, login,
// refresh and logout, plus bearer-token authentication of requests.
//
// Each user has at most one live refresh session. Login overwrites it, logout
// deletes it, refresh only reads it. Access tokens are stateless and stay valid
// until they expire.
package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
	"github.com/famsalud/famsalud/backend/api/internal/models"
	"github.com/famsalud/famsalud/backend/api/internal/security"
	"github.com/famsalud/famsalud/backend/api/internal/sessions"
	"github.com/famsalud/famsalud/backend/api/internal/tokens"
	"github.com/famsalud/famsalud/backend/api/internal/users"
	"github.com/famsalud/famsalud/backend/api/pkg/logger"
	"github.com/famsalud/famsalud/backend/api/pkg/metrics"
)

var (
	ErrInvalidCredentials  = apperrors.Unauthorized("Invalid credentials")
	ErrUserInactive        = apperrors.Unauthorized("User is inactive")
	ErrInvalidRefreshToken = apperrors.Unauthorized("Invalid refresh token")
	ErrRefreshRevoked      = apperrors.Unauthorized("Refresh token has been revoked")
	ErrUnauthenticated     = apperrors.Unauthorized("Unauthorized")
	ErrUserNotActive       = apperrors.Unauthorized("User not found or inactive")
)

// UserStore is the subset of the credential store the service needs.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, fullName string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"fullName" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AccessToken is the result of a refresh.
type AccessToken struct {
	AccessToken string `json:"accessToken"`
}

type Service struct {
	users  UserStore
	cache  sessions.Cache
	codec  *tokens.Codec
	hasher *security.Hasher

	dummyOnce sync.Once
	dummyHash string
}

func NewService(users UserStore, cache sessions.Cache, codec *tokens.Codec, hasher *security.Hasher) *Service {
	return &Service{users: users, cache: cache, codec: codec, hasher: hasher}
}

// Register creates an active account. The email is checked before the password is
// hashed, so a duplicate costs no bcrypt work.
func (s *Service) Register(ctx context.Context, in RegisterInput) (summary *models.UserSummary, err error) {
	defer func() { record("register", err) }()

	// max=72 on the binding counts characters; bcrypt limits bytes
	if len(in.Password) > security.MaxPasswordBytes {
		return nil, apperrors.Validation("Validation failed", apperrors.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("password must be shorter than or equal to %d bytes", security.MaxPasswordBytes),
		})
	}
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, users.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("hash password: %w", err))
	}
	u, err := s.users.Create(ctx, in.Email, hash, in.FullName)
	if err != nil {
		return nil, err
	}
	logger.Debugf("registered user %s", u.ID)
	return u.Summary(), nil
}

// Login verifies credentials and opens a new refresh session, replacing any previous one.
// Unknown email and wrong password fail identically. The inactive check runs only
// after the password matched.
func (s *Service) Login(ctx context.Context, in LoginInput) (pair *tokens.Pair, err error) {
	defer func() { record("login", err) }()

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// burn the same bcrypt work as a real comparison
		s.hasher.Matches(s.dummy(), in.Password)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Matches(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	pair, err = s.codec.IssuePair(u.ID, u.Email)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("issue tokens: %w", err))
	}
	// the tokens are dropped if the session cannot be recorded
	if err := s.cache.Save(ctx, u.ID, security.HashToken(pair.RefreshToken), s.codec.RefreshTTL()); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("store refresh session: %w", err))
	}
	return pair, nil
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token and its session entry are left untouched.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (out *AccessToken, err error) {
	defer func() { record("refresh", err) }()

	claims, err := s.codec.Verify(refreshToken, tokens.KindRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	stored, ok, err := s.cache.Get(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("read refresh session: %w", err))
	}
	if !ok {
		return nil, ErrRefreshRevoked
	}
	if !security.TokenMatches(refreshToken, stored) {
		return nil, ErrInvalidRefreshToken
	}

	access, err := s.codec.IssueAccess(claims.Subject, claims.Email)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("issue access token: %w", err))
	}
	return &AccessToken{AccessToken: access}, nil
}

// Logout deletes the user's refresh session. Deleting a missing session is not an error.
func (s *Service) Logout(ctx context.Context, userID string) (err error) {
	defer func() { record("logout", err) }()

	if err := s.cache.Delete(ctx, userID); err != nil {
		return apperrors.Internal(fmt.Errorf("delete refresh session: %w", err))
	}
	return nil
}

// Authenticate resolves a bearer access token to its active user.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.codec.Verify(accessToken, tokens.KindAccess)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	u, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, ErrUserNotActive
	}
	return u, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("famsalud-timing-equalizer")
		if err != nil {
			logger.Warnf("dummy hash: %v", err)
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func record(op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = apperrors.KindOf(err).String()
	}
	metrics.AuthEvents.WithLabelValues(op, outcome).Inc()
}
