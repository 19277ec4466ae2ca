package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/job-assistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func newTestJWTService(ttl time.Duration) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: testSecret, TTL: ttl, Issuer: config.TokenIssuer})
}

func TestJWTService_GenerateToken(t *testing.T) {
	token, err := newTestJWTService(time.Hour).GenerateToken(uuid.NewString())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	for _, part := range parts {
		assert.NotEmpty(t, part)
	}
}

func TestJWTService_GenerateToken_EmptySessionID(t *testing.T) {
	_, err := newTestJWTService(time.Hour).GenerateToken("")
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestJWTService(time.Hour)
	id1, id2 := uuid.NewString(), uuid.NewString()

	token1, err := service.GenerateToken(id1)
	require.NoError(t, err)
	token2, err := service.GenerateToken(id2)
	require.NoError(t, err)

	claims1, err := service.ValidateToken(token1)
	require.NoError(t, err)
	assert.Equal(t, id1, claims1.GetSessionID())
	assert.Equal(t, config.TokenIssuer, claims1.Issuer)
	assert.NotEmpty(t, claims1.ID)

	claims2, err := service.ValidateToken(token2)
	require.NoError(t, err)
	assert.Equal(t, id2, claims2.Subject)
	assert.NotEqual(t, claims1.ID, claims2.ID)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := newTestJWTService(time.Hour)
	id := uuid.NewString()
	token, err := service.GenerateToken(id)
	require.NoError(t, err)

	got, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got.GetSessionID())

	_, err = service.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	other := NewJWTService(&config.JWTConfig{Secret: "different-secret-key-for-jwt-signing", TTL: time.Hour})
	token, err := other.GenerateToken(uuid.NewString())
	require.NoError(t, err)

	claims, err := newTestJWTService(time.Hour).ValidateToken(token)
	assert.Nil(t, claims)
	assert.ErrorContains(t, err, "signature")
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	service := newTestJWTService(time.Hour)
	for _, token := range []string{"", "invalid", "invalid.token", "invalid.token.format.extra", "invalid.base64.signature"} {
		t.Run(token, func(t *testing.T) {
			claims, err := service.ValidateToken(token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func signClaims(t *testing.T, claims jwt.Claims, method jwt.SigningMethod) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestJWTService_ValidateToken_RejectsBadClaims(t *testing.T) {
	service := newTestJWTService(time.Hour)
	now := time.Now()
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "sid",
			Issuer:    config.TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*jwt.RegisteredClaims)
		method  jwt.SigningMethod
		wantErr string
	}{
		{"no session", func(c *jwt.RegisteredClaims) { c.Subject = "" }, jwt.SigningMethodHS256, "session ID"},
		{"foreign issuer", func(c *jwt.RegisteredClaims) { c.Issuer = "someone-else" }, jwt.SigningMethodHS256, "issuer"},
		{"no expiry", func(c *jwt.RegisteredClaims) { c.ExpiresAt = nil }, jwt.SigningMethodHS256, "exp"},
		{"other algorithm", func(*jwt.RegisteredClaims) {}, jwt.SigningMethodHS512, "signing method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			_, err := service.ValidateToken(signClaims(t, c, tt.method))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestJWTService_TokenExpiration(t *testing.T) {
	service := newTestJWTService(time.Hour)
	issued := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	id := uuid.NewString()
	token, err := service.GenerateToken(id)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(time.Hour), claims.ExpiresAt.Time.UTC())

	service.now = func() time.Time { return issued.Add(2 * time.Hour) }
	expired, err := service.ValidateToken(token)
	assert.Nil(t, expired)
	assert.ErrorContains(t, err, "expired")
}

func TestJWTService_DefaultTTL(t *testing.T) {
	service := NewJWTService(&config.JWTConfig{Secret: testSecret})
	issued := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken("sid")
	require.NoError(t, err)
	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(config.DefaultTokenTTL), claims.ExpiresAt.Time.UTC())
}
