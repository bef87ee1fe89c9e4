package connection

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarefas/config"
	"tarefas/model"
	"tarefas/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info", GinMode: "test", PublicURL: "https://example.com"},
		Store:  config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: "unused.db"},
		Auth:   config.AuthConfig{Mode: config.AuthModeDev, SessionSecret: testutil.SessionSecret, SessionTTL: time.Hour},
	}
}

func TestRouterEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := testutil.NewFakeStore()
	sessions := testutil.NewSessionService()
	router := NewRouter(testConfig(), Dependencies{Store: store, Sessions: sessions},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	ana := model.Identity{Email: "ana@example.com", Name: "Ana"}
	cookie := testutil.SessionCookie(t, sessions, ana)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodPost, "/dashboard/tasks", strings.NewReader(`{"input":"ship it","public":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Len(t, store.CreatedTasks, 1)
	tasks, err := store.ListTasksByOwner(req.Context(), ana.Email)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	id := tasks[0].ID

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/task/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ship it")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterRegistersOnlyConfiguredSignIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(testConfig(), Dependencies{Store: testutil.NewFakeStore(), Sessions: testutil.NewSessionService()},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(`{"idToken":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
