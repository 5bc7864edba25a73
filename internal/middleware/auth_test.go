package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func adminRequest(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()

	handler := RequireAdmin(testSecret, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/snapshot", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireAdminAcceptsValidToken(t *testing.T) {
	token, err := AdminToken(testSecret, time.Hour)
	require.NoError(t, err)

	rec := adminRequest(t, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	rec := adminRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsWrongSecret(t *testing.T) {
	token, err := AdminToken("another-secret-another-secret-xx", time.Hour)
	require.NoError(t, err)

	rec := adminRequest(t, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsExpiredToken(t *testing.T) {
	token, err := AdminToken(testSecret, -time.Minute)
	require.NoError(t, err)

	rec := adminRequest(t, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
