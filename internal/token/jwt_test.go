package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamitejs/service-auth/internal/model"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 0)
	u := uuid.New()

	tok, err := j.Issue(model.Claims{SubjectID: u, Email: "alice@example.com"})
	require.NoError(t, err)

	got, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, u, got.SubjectID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.WithinDuration(t, got.IssuedAt.Add(DefaultTTL), got.ExpiresAt, time.Second)
}

func TestJWT_ExpiryValidation(t *testing.T) {
	now := time.Now()
	j := NewJWT("secret", time.Hour)
	j.now = func() time.Time { return now }

	tok, err := j.Issue(model.Claims{SubjectID: uuid.New(), Email: "a@b.c"})
	require.NoError(t, err)

	j.now = func() time.Time { return now.Add(59 * time.Minute) }
	_, err = j.Verify(tok)
	require.NoError(t, err)

	j.now = func() time.Time { return now.Add(61 * time.Minute) }
	_, err = j.Verify(tok)
	require.ErrorIs(t, err, model.ErrTokenInvalid)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_Verify_Failures(t *testing.T) {
	issuer := NewJWT("secret", time.Hour)
	valid, err := issuer.Issue(model.Claims{SubjectID: uuid.New(), Email: "a@b.c"})
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	tests := []struct {
		name  string
		token string
		j     *JWT
	}{
		{name: "malformed", token: "not.a.token", j: issuer},
		{name: "empty", token: "", j: issuer},
		{name: "wrong secret", token: valid, j: NewJWT("other", time.Hour)},
		{name: "tampered signature", token: tampered, j: issuer},
		{name: "wrong algorithm", token: hs512, j: issuer},
		{name: "unsigned", token: none, j: issuer},
		{name: "missing expiry", token: noExpiry, j: issuer},
		{name: "subject is not a user id", token: badSubject, j: issuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.j.Verify(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrTokenInvalid)
		})
	}
}

func TestNewJWT_DefaultTTL(t *testing.T) {
	j := NewJWT("secret", -time.Minute)
	assert.Equal(t, DefaultTTL, j.ttl)
}
