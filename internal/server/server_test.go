package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"campstead/internal/cache"
	"campstead/internal/config"
	"campstead/internal/database"
	"campstead/internal/session"
	"campstead/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires a full server against sqlite, miniredis, and the
// in-memory object store. Tests sharing the global cache client must not
// run in parallel.
func newTestServer(t *testing.T) (*Server, *storage.MemoryStore, *gorm.DB) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(client)
	t.Cleanup(func() { cache.SetClient(nil) })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:            "0",
		SessionTTLHours: 24,
		AllowedOrigins:  "http://localhost:5173",
		Env:             "test",
	}

	images := storage.NewMemoryStore()
	sessions := session.NewStore(client, cfg.SessionTTL())
	srv := New(cfg, db, sessions, images)
	return srv, images, db
}

func doRequest(t *testing.T, srv *Server, req *http.Request, cookie string) *http.Response {
	t.Helper()

	if cookie != "" {
		req.Header.Set("Cookie", session.CookieName+"="+cookie)
	}
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doForm(t *testing.T, srv *Server, method, path string, form url.Values, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(t, srv, req, cookie)
}

func doGet(t *testing.T, srv *Server, path, cookie string) *http.Response {
	t.Helper()
	return doRequest(t, srv, httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	return ""
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

// flashTexts drains the session's flash queue through the API.
func flashTexts(t *testing.T, srv *Server, cookie string) []string {
	t.Helper()

	resp := doGet(t, srv, "/session/flash", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	raw, _ := body["messages"].([]any)
	texts := make([]string, 0, len(raw))
	for _, m := range raw {
		msg := m.(map[string]any)
		texts = append(texts, msg["text"].(string))
	}
	return texts
}

// registerUser signs up a fresh account and returns its session cookie.
func registerUser(t *testing.T, srv *Server, username string) string {
	t.Helper()

	resp := doForm(t, srv, http.MethodPost, "/register", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"trailmix99"},
	}, "")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)

	// Drain the welcome flash so tests start clean.
	flashTexts(t, srv, cookie)
	return cookie
}

// createCampground submits the standard fixture and returns its show path.
func createCampground(t *testing.T, srv *Server, cookie string) string {
	t.Helper()

	resp := doForm(t, srv, http.MethodPost, "/campgrounds", url.Values{
		"title":       {"Pine Ridge"},
		"description": {"Quiet pines above the river."},
		"price":       {"25"},
		"location":    {"CO"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/campgrounds/"))
	flashTexts(t, srv, cookie)
	return location
}
