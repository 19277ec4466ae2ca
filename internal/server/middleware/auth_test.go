package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator struct {
	validTokens map[string]string
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SessionIDGetter, error) {
	id, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(id), nil
}

type testClaims string

func (c testClaims) GetSessionID() string { return string(c) }

func newProtected(t *testing.T) http.Handler {
	t.Helper()
	validator := &testTokenValidator{validTokens: map[string]string{"good-token": "session-1"}}
	return AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetSessionID(r)
		require.NoError(t, err)
		_, _ = w.Write([]byte(id))
	}))
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	for _, header := range []string{"Bearer good-token", "bearer good-token", "  Bearer   good-token "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		newProtected(t).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Equal(t, "session-1", w.Body.String())
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good-token"},
		{"no token", "Bearer"},
		{"extra parts", "Bearer good-token extra"},
		{"unknown token", "Bearer bad-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			newProtected(t).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGetSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSessionID(req)
	require.Error(t, err)

	req = req.WithContext(WithSessionID(context.Background(), "abc"))
	id, err := GetSessionID(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}
