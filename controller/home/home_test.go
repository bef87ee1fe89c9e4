package home

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarefas/middleware"
	"tarefas/model"
	"tarefas/testutil"
	"tarefas/views"
)

func TestHomeShowsCountersAndSignIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := testutil.NewFakeStore()
	store.AddTask(model.Task{ID: "t1", Owner: "ana@example.com"})
	store.AddTask(model.Task{ID: "t2", Owner: "bob@example.com"})
	store.AddComment(model.Comment{ID: "c1", TaskID: "t1"})

	sessions := testutil.NewSessionService()
	router := gin.New()
	router.Use(middleware.SessionMiddleware(sessions))
	HomeController(router, store, "firebase", views.FirebaseWeb{APIKey: "key-123", ProjectID: "tarefas-test"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "+2 posts")
	assert.Contains(t, body, "+1 comments")
	assert.Contains(t, body, `id="google-signin"`)
	assert.Contains(t, body, "key-123")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(testutil.SessionCookie(t, sessions, model.Identity{Email: "ana@example.com", Name: "Ana"}))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	body = w.Body.String()
	assert.Contains(t, body, `href="/dashboard"`)
	assert.NotContains(t, body, `id="google-signin"`)
}

func TestHomeDevMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.SessionMiddleware(testutil.NewSessionService()))
	HomeController(router, testutil.NewFakeStore(), "dev", views.FirebaseWeb{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, w.Body.String(), "/auth/dev")
	assert.NotContains(t, w.Body.String(), "firebasejs")
}

func TestHomeCountersUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := testutil.NewFakeStore()
	store.CountErr = assert.AnError
	router := gin.New()
	router.Use(middleware.SessionMiddleware(testutil.NewSessionService()))
	HomeController(router, store, "dev", views.FirebaseWeb{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Counters unavailable")
	assert.NotContains(t, body, "+0 posts")
	assert.Contains(t, body, "/auth/dev", "sign-in still renders")
}
