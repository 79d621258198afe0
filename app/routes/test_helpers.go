package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"miniblog/app/middleware"
	"miniblog/app/sessions"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestTemplates(t *testing.T) string {
	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "app", "views")

	// Create directories
	dirs := []string{
		filepath.Join(viewsDir, "posts"),
		filepath.Join(viewsDir, "auth"),
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	// Minimal templates rendering exactly the fields the tests assert on.
	templates := map[string]string{
		filepath.Join(viewsDir, "layout.html"):        `{{define "layout"}}{{if .Message}}[flash:{{.Message}}]{{end}}{{if .Error}}[error:{{.Error}}]{{end}}{{template "content" .}}{{end}}`,
		filepath.Join(viewsDir, "posts/index.html"):   `{{define "content"}}{{range .Posts}}<h2>{{.Title}}</h2>{{end}}{{end}}`,
		filepath.Join(viewsDir, "posts/show.html"):    `{{define "content"}}<h1>{{.Post.Title}}</h1><p>{{.Post.Body}}</p><i>{{.Post.AuthorName}}</i>{{end}}`,
		filepath.Join(viewsDir, "posts/new.html"):     `{{define "content"}}new-post-form{{end}}`,
		filepath.Join(viewsDir, "posts/edit.html"):    `{{define "content"}}edit:{{.Post.Title}}{{end}}`,
		filepath.Join(viewsDir, "auth/register.html"): `{{define "content"}}register-form{{end}}`,
		filepath.Join(viewsDir, "auth/login.html"):    `{{define "content"}}login-form{{end}}`,
	}
	for path, content := range templates {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return tmpDir
}

func setupTestRouter(t *testing.T) http.Handler {
	tmpDir := setupTestTemplates(t)
	db := setupTestDB(t)
	store := sessions.NewStore(time.Hour)
	return SetupRoutes(db, store, tmpDir, zap.NewNop())
}

func doRequest(t *testing.T, router http.Handler, method, path string, body io.Reader, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, router http.Handler, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, router, "POST", path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", cookie)
}

// registerUser runs the registration flow and returns the issued session
// cookie.
func registerUser(t *testing.T, router http.Handler, username, email, password string) *http.Cookie {
	t.Helper()
	w := postForm(t, router, "/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/posts", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie issued on register")
	return nil
}

// createPostWeb creates a post through the web form and returns its ID,
// parsed from the redirect target.
func createPostWeb(t *testing.T, router http.Handler, cookie *http.Cookie, title, body string) string {
	t.Helper()
	w := postForm(t, router, "/posts", url.Values{
		"title": {title},
		"body":  {body},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/posts/"))
	return strings.TrimPrefix(location, "/posts/")
}
