package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthPassesUserID(t *testing.T) {
	var gotUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		gotUserID = userID
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/engine/grid", nil)
	req.Header.Set(HeaderUserID, "42")
	rec := httptest.NewRecorder()

	Auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/engine/grid", nil)
	rec := httptest.NewRecorder()

	Auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsInvalidHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})

	for _, value := range []string{"abc", "-1", "0", "1.5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/engine/grid", nil)
		req.Header.Set(HeaderUserID, value)
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "value=%q", value)
	}
}
