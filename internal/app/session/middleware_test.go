package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"msgboard/internal/pkg/errs"
)

func serveWithBearer(t *testing.T, m *Manager, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	nextCalled := false
	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/protected/messages", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec, nextCalled
}

func TestMiddlewareSurfacesStorageFailure(t *testing.T) {
	t.Parallel()

	m := NewManager(failingStore{}, nil)

	// A well-formed token forces a storage lookup; when that lookup fails
	// the middleware must answer 500, not fall through as anonymous.
	rec, nextCalled := serveWithBearer(t, m, "s_abc123XYZ1700000000000")

	require.False(t, nextCalled)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, errs.ErrStorageFailure, body.Code)
}

func TestMiddlewareTreatsInvalidTokenAsAnonymous(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)

	rec, nextCalled := serveWithBearer(t, m, "s_neverIssued1700000000000")

	require.True(t, nextCalled)
	require.Equal(t, http.StatusOK, rec.Code)
}
