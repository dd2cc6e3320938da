package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yukikurage/todo-api/internal/constants"
)

var (
	ErrInvalidToken       = errors.New("could not validate credential")
	ErrFailedToIssueToken = errors.New("failed to issue token")
)

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	Username string
	UserID   uint64
}

// tokenClaims is the JWT payload: sub (username), id (user id) and exp.
type tokenClaims struct {
	UserID *uint64 `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a new TokenService. A zero defaultTTL falls back to 15 minutes.
func NewTokenService(secret string, defaultTTL time.Duration) *TokenService {
	if defaultTTL <= 0 {
		defaultTTL = constants.DefaultTokenTTL
	}
	return &TokenService{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Issue signs a token for the user that expires after ttl, or after the
// service default when ttl is zero.
func (s *TokenService) Issue(username string, userID uint64, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}

	now := s.now()
	claims := tokenClaims{
		UserID: &userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and extracts the identity.
// Every failure is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	claims := tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	username := strings.TrimSpace(claims.Subject)
	if username == "" || claims.UserID == nil {
		return Identity{}, fmt.Errorf("%w: missing subject or id", ErrInvalidToken)
	}

	return Identity{Username: username, UserID: *claims.UserID}, nil
}
