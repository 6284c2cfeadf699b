package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-test-secret-test-secret"

func TestIssueThenValidate(t *testing.T) {
	tm := NewTokenMaker(secret, 5*time.Minute)

	tok, err := tm.Issue("Javi")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	require.NoError(t, tm.Validate(tok))

	c, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "Javi", c.Name)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, 5*time.Minute, c.ExpiresAt.Sub(c.IssuedAt.Time))
}

func TestValidate_Missing(t *testing.T) {
	tm := NewTokenMaker(secret, time.Minute)
	assert.ErrorIs(t, tm.Validate(""), ErrMissing)
}

func TestValidate_WrongSecret(t *testing.T) {
	tok, err := NewTokenMaker("another-secret-another-secret-xx", time.Minute).Issue("Javi")
	require.NoError(t, err)

	assert.ErrorIs(t, NewTokenMaker(secret, time.Minute).Validate(tok), ErrInvalid)
}

func TestValidate_Expired(t *testing.T) {
	tm := NewTokenMaker(secret, 5*time.Minute)
	issued := time.Now().Add(-10 * time.Minute)
	tm.now = func() time.Time { return issued }

	tok, err := tm.Issue("Javi")
	require.NoError(t, err)

	tm.now = time.Now
	assert.ErrorIs(t, tm.Validate(tok), ErrInvalid)
}

func TestValidate_Garbage(t *testing.T) {
	tm := NewTokenMaker(secret, time.Minute)
	assert.ErrorIs(t, tm.Validate("not.a.token"), ErrInvalid)
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		Name: "Javi",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	assert.ErrorIs(t, NewTokenMaker(secret, time.Minute).Validate(tok), ErrInvalid)
}

func TestValidate_RequiresExpiry(t *testing.T) {
	claims := Claims{Name: "Javi", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	assert.ErrorIs(t, NewTokenMaker(secret, time.Minute).Validate(tok), ErrInvalid)
}

func TestNewTokenMaker_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewTokenMaker(secret, 0).TTL())
}
