package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	t.Run("no dependencies", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleReadyz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("database reachable", func(t *testing.T) {
		db := new(MockPinger)
		db.On("Ping", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		HandleReadyz(db).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
		db.AssertExpectations(t)
	})

	t.Run("database timeout", func(t *testing.T) {
		db := new(MockPinger)
		db.On("Ping", mock.Anything).Return(context.DeadlineExceeded)

		w := httptest.NewRecorder()
		HandleReadyz(nil, db).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
		db.AssertExpectations(t)
	})
}

func TestHandleVersion(t *testing.T) {
	t.Setenv("VERSION", "1.4.2")

	w := httptest.NewRecorder()
	HandleVersion("brandish-reveal").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "brandish-reveal", info.Service)
	assert.Equal(t, "1.4.2", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
