package router

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"noticeboard/internal/content"
	"noticeboard/internal/metrics"
	"noticeboard/internal/session"
	"noticeboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	server *httptest.Server
	posts  *content.Store
	dir    *session.Directory
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := metrics.New("test")
	dir, err := session.NewDirectory(session.SeedCredentials(), bcrypt.MinCost, m)
	require.NoError(t, err)

	posts, err := content.New(storage.NewMemoryKV(), session.ContextActor{}, content.Options{Metrics: m})
	require.NoError(t, err)
	require.NoError(t, posts.Load(context.Background()))

	r, err := NewEngine(Deps{
		Directory:     dir,
		Posts:         posts,
		Metrics:       m,
		Logger:        zap.NewNop(),
		SessionSecret: "test-secret",
		TemplatesDir:  "../../web/templates",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testApp{server: srv, posts: posts, dir: dir}
}

// visitor is a browser with its own cookie jar.
func (a *testApp) visitor(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func (a *testApp) get(t *testing.T, c *http.Client, path string) (int, string) {
	t.Helper()
	resp, err := c.Get(a.server.URL + path)
	require.NoError(t, err)
	return resp.StatusCode, body(t, resp)
}

func (a *testApp) post(t *testing.T, c *http.Client, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := c.PostForm(a.server.URL+path, form)
	require.NoError(t, err)
	return resp.StatusCode, body(t, resp)
}

func (a *testApp) do(t *testing.T, c *http.Client, method, path string, htmx bool) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, a.server.URL+path, nil)
	require.NoError(t, err)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	return resp.StatusCode, body(t, resp)
}

func (a *testApp) login(t *testing.T, c *http.Client, email, password string) string {
	t.Helper()
	code, page := a.post(t, c, "/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(t, http.StatusOK, code)
	return page
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)
	c := app.visitor(t)

	code, page := app.get(t, c, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Welcome to the Online Notice Board")
	assert.Contains(t, page, "Annual Company Picnic")
	assert.Contains(t, page, "Log in")

	code, page = app.get(t, c, "/?category=Events")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Annual Company Picnic")

	code, page = app.get(t, c, "/search?q=MAINTENANCE")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Upcoming System Maintenance")
	assert.NotContains(t, page, "Annual Company Picnic")

	code, page = app.get(t, c, "/categories")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Policies")

	code, page = app.get(t, c, "/p/3")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Will there be vegetarian options?")

	code, _ = app.get(t, c, "/p/does-not-exist")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = app.get(t, c, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = app.get(t, c, "/healthz")
	assert.Equal(t, http.StatusOK, code)
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	c := app.visitor(t)

	code, page := app.post(t, c, "/login", url.Values{"email": {"user@example.com"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, page, "Login failed")
	assert.Contains(t, page, "Invalid email or password")

	page = app.login(t, c, "user@example.com", "user123")
	assert.Contains(t, page, "Login successful")
	assert.Contains(t, page, "Welcome back, Regular User!")

	code, page = app.get(t, c, "/profile")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "user@example.com")
	assert.Contains(t, page, "RU")

	code, page = app.get(t, c, "/logout")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Logged out")

	// profile now bounces to the login page
	code, page = app.get(t, c, "/profile")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, `action="/login"`)
}

func TestSignupFlow(t *testing.T) {
	app := newTestApp(t)
	c := app.visitor(t)

	form := url.Values{
		"name":             {"Jamie Doe"},
		"email":            {"jamie@example.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	}
	code, page := app.post(t, c, "/signup", form)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Registration successful")
	assert.Contains(t, page, "Welcome, Jamie Doe!")
	assert.Equal(t, 3, app.dir.Len())

	other := app.visitor(t)
	code, page = app.post(t, other, "/signup", form)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, page, "User with this email already exists")
	assert.Equal(t, 3, app.dir.Len())

	form.Set("confirm_password", "different")
	form.Set("email", "someone@example.com")
	code, _ = app.post(t, other, "/signup", form)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 3, app.dir.Len())
}

func TestLikeToggle(t *testing.T) {
	app := newTestApp(t)
	c := app.visitor(t)

	// anonymous htmx request is told to log in
	code, _ := app.do(t, c, http.MethodPost, "/like/2", true)
	assert.Equal(t, http.StatusUnauthorized, code)

	app.login(t, c, "user@example.com", "user123")

	code, count := app.do(t, c, http.MethodPost, "/like/2", true)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1", count)
	p, _ := app.posts.GetPostByID("2")
	assert.Equal(t, []string{"2"}, p.Likes)

	code, count = app.do(t, c, http.MethodPost, "/like/2", true)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "0", count)

	code, _ = app.do(t, c, http.MethodPost, "/like/missing", true)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminPublishesAndDeletes(t *testing.T) {
	app := newTestApp(t)

	regular := app.visitor(t)
	app.login(t, regular, "user@example.com", "user123")
	code, _ := app.get(t, regular, "/submit")
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = app.get(t, regular, "/admin")
	assert.Equal(t, http.StatusForbidden, code)

	admin := app.visitor(t)
	app.login(t, admin, "admin@example.com", "admin123")

	code, page := app.get(t, admin, "/submit")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, `name="category"`)

	code, page = app.post(t, admin, "/submit", url.Values{
		"title":       {"Test Notice"},
		"description": {"Fire drill on **Friday**."},
		"category":    {"General"},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Post created")
	assert.Contains(t, page, "<strong>Friday</strong>")

	posts := app.posts.Posts()
	require.Len(t, posts, 4)
	created := posts[0]
	assert.Equal(t, "Test Notice", created.Title)
	assert.Equal(t, "1", created.AuthorID)

	code, page = app.post(t, admin, "/submit", url.Values{
		"title":       {"Bad"},
		"description": {"d"},
		"category":    {"Sports"},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, page, "Sports")
	assert.Len(t, app.posts.Posts(), 4)

	// regular user comments, cannot delete the post
	code, page = app.post(t, regular, "/p/"+created.ID+"/comment", url.Values{"content": {"Noted!"}})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Comment added")
	assert.Contains(t, page, "Noted!")
	code, _ = app.do(t, regular, http.MethodDelete, "/p/"+created.ID, true)
	assert.Equal(t, http.StatusForbidden, code)

	code, page = app.get(t, admin, "/admin")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Regular User")
	assert.Contains(t, page, "Test Notice")

	code, _ = app.do(t, admin, http.MethodDelete, "/p/"+created.ID, true)
	assert.Equal(t, http.StatusOK, code)
	_, ok := app.posts.GetPostByID(created.ID)
	assert.False(t, ok)

	code, _ = app.do(t, admin, http.MethodDelete, "/p/"+created.ID, true)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestEditAndCommentDelete(t *testing.T) {
	app := newTestApp(t)
	admin := app.visitor(t)
	app.login(t, admin, "admin@example.com", "admin123")

	code, page := app.get(t, admin, "/p/2/edit")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Upcoming System Maintenance")

	code, page = app.post(t, admin, "/p/2/edit", url.Values{
		"title":       {"Maintenance Rescheduled"},
		"description": {"Moved to next weekend."},
		"category":    {"Maintenance"},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Post updated")
	p, _ := app.posts.GetPostByID("2")
	assert.Equal(t, "Maintenance Rescheduled", p.Title)

	code, _ = app.do(t, admin, http.MethodDelete, "/p/1/comment/1", true)
	assert.Equal(t, http.StatusOK, code)
	p, _ = app.posts.GetPostByID("1")
	assert.Empty(t, p.Comments)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	c := app.visitor(t)
	app.get(t, c, "/")

	code, page := app.get(t, c, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(page, "test_http_requests_total"))
	assert.Contains(t, page, "test_posts 3")
}

func TestTimeAgo(t *testing.T) {
	assert.Equal(t, "just now", timeAgo(time.Now()))
	assert.Equal(t, "1 hour ago", timeAgo(time.Now().Add(-61*time.Minute)))
	assert.Equal(t, "7 days ago", timeAgo(time.Now().Add(-7*24*time.Hour)))
}
