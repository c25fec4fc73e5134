package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/model"
)

// Claims represents JWT claims with token type. The subject is the username.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWT creates a new JWT token manager with the provided secret key and lifetimes.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// GenerateToken creates an access token for the user.
func (j *JWT) GenerateToken(user model.User) (string, error) {
	return j.sign(user.Username, typeAccess, j.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token for the user.
func (j *JWT) GenerateRefreshToken(user model.User) (string, error) {
	return j.sign(user.Username, typeRefresh, j.refreshTTL)
}

// ExtractUsername validates an access token and returns its subject.
func (j *JWT) ExtractUsername(tokenString string) (string, error) {
	claims, err := j.parse(tokenString, typeAccess)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractRefreshUsername validates a refresh token and returns its subject.
func (j *JWT) ExtractRefreshUsername(tokenString string) (string, error) {
	claims, err := j.parse(tokenString, typeRefresh)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsTokenValid reports whether the token belongs to user and has not expired.
// Both access and refresh tokens are accepted.
func (j *JWT) IsTokenValid(tokenString string, user model.User) bool {
	claims, err := j.parse(tokenString, "")
	if err != nil {
		return false
	}
	return claims.Subject == user.Username
}

func (j *JWT) sign(subject, tokenType string, ttl time.Duration) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// parse verifies signature and expiry. An empty wantType accepts any type.
func (j *JWT) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", model.ErrTokenMalformed, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, model.ErrTokenMalformed
	}
	if wantType != "" && claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: token type mismatch: %s", model.ErrTokenMalformed, claims.TokenType)
	}
	return claims, nil
}
