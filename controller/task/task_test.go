package task

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarefas/middleware"
	"tarefas/model"
	"tarefas/services"
	"tarefas/testutil"
)

var (
	ana = model.Identity{Email: "ana@example.com", Name: "Ana"}
	bob = model.Identity{Email: "bob@example.com", Name: "Bob"}
)

type fixture struct {
	router   *gin.Engine
	store    *testutil.FakeStore
	sessions *services.SessionService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewFakeStore()
	sessions := testutil.NewSessionService()
	router := gin.New()
	router.Use(middleware.SessionMiddleware(sessions))
	TaskController(router, store, store)

	store.AddTask(model.Task{ID: "public", Text: "learn gin", Public: true, Owner: ana.Email,
		Created: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)})
	store.AddTask(model.Task{ID: "private", Text: "diary", Public: false, Owner: ana.Email})

	return &fixture{router: router, store: store, sessions: sessions}
}

func (f *fixture) do(t *testing.T, method, path, body string, identity *model.Identity) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if identity != nil {
		req.AddCookie(testutil.SessionCookie(t, f.sessions, *identity))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestTaskDetailRedirectsPrivateTasks(t *testing.T) {
	f := setup(t)

	for name, identity := range map[string]*model.Identity{
		"anonymous": nil,
		"owner":     &ana,
		"stranger":  &bob,
	} {
		t.Run(name, func(t *testing.T) {
			w := f.do(t, http.MethodGet, "/task/private", "", identity)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
			assert.NotContains(t, w.Body.String(), "diary")
		})
	}
}

func TestTaskDetailRedirectsMissingTask(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, "/task/nope", "", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestTaskDetailRendersPublicTask(t *testing.T) {
	f := setup(t)
	f.store.AddComment(model.Comment{ID: "c1", TaskID: "public", Text: "nice one", Author: ana.Email, AuthorName: "Ana"})
	f.store.AddComment(model.Comment{ID: "c2", TaskID: "other", Text: "elsewhere", Author: bob.Email, AuthorName: "Bob"})

	w := f.do(t, http.MethodGet, "/task/public", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "learn gin")
	assert.Contains(t, body, "05/03/2024")
	assert.Contains(t, body, "nice one")
	assert.NotContains(t, body, "elsewhere")
	assert.Contains(t, body, " disabled>", "anonymous visitors cannot submit comments")
}

func TestTaskDetailEmptyComments(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, "/task/public", "", &bob)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="no-comments"`)
	assert.NotContains(t, w.Body.String(), " disabled>")
}

func TestTaskDetailStoreFailure(t *testing.T) {
	f := setup(t)
	f.store.ListCommentsErr = assert.AnError

	w := f.do(t, http.MethodGet, "/task/public", "", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCommentDeleteControlOnlyForAuthor(t *testing.T) {
	f := setup(t)
	f.store.AddComment(model.Comment{ID: "c1", TaskID: "public", Text: "by ana", Author: ana.Email, AuthorName: "Ana"})
	f.store.AddComment(model.Comment{ID: "c2", TaskID: "public", Text: "by bob", Author: bob.Email, AuthorName: "Bob"})

	tests := []struct {
		name     string
		viewer   *model.Identity
		deletes  []string
		noDelete []string
	}{
		{"anonymous", nil, nil, []string{"c1", "c2"}},
		{"ana", &ana, []string{"c1"}, []string{"c2"}},
		{"bob", &bob, []string{"c2"}, []string{"c1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodGet, "/task/public", "", tt.viewer)
			require.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			for _, id := range tt.deletes {
				assert.Contains(t, body, "/task/public/comments/"+id)
			}
			for _, id := range tt.noDelete {
				assert.NotContains(t, body, "/task/public/comments/"+id)
			}
		})
	}
}

func TestCreateCommentRejectsEmptyInput(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/task/public/comments", `{"comment":""}`, &bob)

	assert.Contains(t, w.Body.String(), "toast-error")
	assert.Empty(t, f.store.CreatedComments)
}

func TestCreateCommentRequiresIdentity(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/task/public/comments", `{"comment":"hello"}`, nil)

	assert.Contains(t, w.Body.String(), "Sign in to comment")
	assert.Empty(t, f.store.CreatedComments)
}

func TestCreateCommentAppendsToPage(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/task/public/comments", `{"comment":"great task"}`, &bob)

	require.Len(t, f.store.CreatedComments, 1)
	created := f.store.CreatedComments[0]
	assert.Equal(t, "public", created.TaskID)
	assert.Equal(t, "great task", created.Text)
	assert.Equal(t, bob.Email, created.Author)
	assert.Equal(t, bob.Name, created.AuthorName)

	body := w.Body.String()
	assert.Contains(t, body, "#no-comments")
	assert.Contains(t, body, "#comments")
	assert.Contains(t, body, "mode append")
	assert.Contains(t, body, "great task")
	assert.Contains(t, body, `"comment":""`)
	assert.Contains(t, body, "toast-success")
}

func TestCreateCommentStoreFailure(t *testing.T) {
	f := setup(t)
	f.store.CreateCommentErr = assert.AnError

	w := f.do(t, http.MethodPost, "/task/public/comments", `{"comment":"great task"}`, &bob)

	require.Len(t, f.store.CreatedComments, 1, "one insert attempted")
	body := w.Body.String()
	assert.Contains(t, body, "toast-error")
	assert.Contains(t, body, "Failed to add comment")
	assert.NotContains(t, body, "mode append")
	assert.NotContains(t, body, "#no-comments")
	assert.NotContains(t, body, `"comment":""`, "the typed comment is kept")
}

func TestDeleteCommentThroughAnotherTask(t *testing.T) {
	f := setup(t)
	f.store.AddComment(model.Comment{ID: "c1", TaskID: "public", Text: "by bob", Author: bob.Email, AuthorName: "Bob"})

	w := f.do(t, http.MethodDelete, "/task/private/comments/c1", "", &bob)

	assert.Contains(t, w.Body.String(), "Comment not found")
	assert.NotContains(t, w.Body.String(), "#comment-c1")
	assert.Empty(t, f.store.DeletedComments)
}

func TestDeleteComment(t *testing.T) {
	f := setup(t)
	f.store.AddComment(model.Comment{ID: "c1", TaskID: "public", Text: "by bob", Author: bob.Email, AuthorName: "Bob"})

	t.Run("anonymous is redirected", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, "/task/public/comments/c1", "", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Empty(t, f.store.DeletedComments)
	})

	t.Run("other identity is refused", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, "/task/public/comments/c1", "", &ana)
		assert.Contains(t, w.Body.String(), "You can only delete your own comments")
		assert.Empty(t, f.store.DeletedComments)
	})

	t.Run("author deletes", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, "/task/public/comments/c1", "", &bob)
		assert.Equal(t, []string{"c1"}, f.store.DeletedComments)
		assert.Contains(t, w.Body.String(), "#comment-c1")
	})
}
