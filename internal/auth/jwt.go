package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer     = "minicatalog"
	DefaultTTL = 5 * time.Minute
)

var (
	ErrMissing = errors.New("missing token")
	ErrInvalid = errors.New("invalid token")
)

// Claims carries only the display name of the logged-in identity; the rest
// are registered claims.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenMaker{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *TokenMaker) TTL() time.Duration { return t.ttl }

// Issue signs a token for identity that expires after the maker's TTL.
func (t *TokenMaker) Issue(identity string) (string, error) {
	now := t.now()

	claims := Claims{
		Name: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Validate returns ErrMissing for an empty token and ErrInvalid for a bad
// signature, a foreign issuer or an expired token.
func (t *TokenMaker) Validate(tokenStr string) error {
	_, err := t.Parse(tokenStr)
	return err
}

func (t *TokenMaker) Parse(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, ErrMissing
	}

	var c Claims
	token, err := jwt.ParseWithClaims(tokenStr, &c,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || token == nil || !token.Valid {
		return Claims{}, ErrInvalid
	}

	return c, nil
}
