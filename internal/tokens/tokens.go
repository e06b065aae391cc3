package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/famsalud/famsalud/backend/api/internal/config"
)

// Kind distinguishes access tokens from refresh tokens; it travels in the "typ" claim.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrInvalidToken covers malformed, expired, tampered and wrong-kind tokens alike.
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSecret     = errors.New("tokens: signing secret is empty")
)

// Claims is the signed payload: subject (user id) and email plus bookkeeping.
type Claims struct {
	Email string `json:"email"`
	Type  Kind   `json:"typ"`
	jwt.RegisteredClaims
}

// Pair is the result of a successful login.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Codec signs and verifies HMAC JWTs.
type Codec struct {
	secret     []byte
	method     jwt.SigningMethod
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Option customizes a Codec.
type Option func(*Codec)

// WithClock overrides the time source for issuing and validation.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec builds a codec from the JWT configuration.
func NewCodec(cfg config.JWTConfig, opts ...Option) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}
	var m jwt.SigningMethod
	switch cfg.Algorithm {
	case "", "HS256":
		m = jwt.SigningMethodHS256
	case "HS384":
		m = jwt.SigningMethodHS384
	case "HS512":
		m = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("tokens: unsupported algorithm %q", cfg.Algorithm)
	}
	c := &Codec{
		secret:     []byte(cfg.Secret),
		method:     m,
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
	}
	if c.accessTTL <= 0 {
		c.accessTTL = 15 * time.Minute
	}
	if c.refreshTTL <= 0 {
		c.refreshTTL = 7 * 24 * time.Hour
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// IssueAccess mints a short-lived access token.
func (c *Codec) IssueAccess(subject, email string) (string, error) {
	return c.issue(subject, email, KindAccess, c.accessTTL)
}

// IssueRefresh mints a long-lived refresh token.
func (c *Codec) IssueRefresh(subject, email string) (string, error) {
	return c.issue(subject, email, KindRefresh, c.refreshTTL)
}

// IssuePair mints both tokens for the same subject.
func (c *Codec) IssuePair(subject, email string) (*Pair, error) {
	access, err := c.IssueAccess(subject, email)
	if err != nil {
		return nil, err
	}
	refresh, err := c.IssueRefresh(subject, email)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (c *Codec) issue(subject, email string, kind Kind, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		Email: email,
		Type:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// unique per token so two tokens minted in the same second differ
			ID: uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify checks signature, algorithm, expiry and kind, returning the claims.
// Every failure is reported as ErrInvalidToken wrapping the parser's reason.
func (c *Codec) Verify(raw string, kind Kind) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
		// reject non-canonical base64, including stray padding bits in the last character
		jwt.WithStrictDecoding(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != kind {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, kind, claims.Type)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
