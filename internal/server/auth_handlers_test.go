package server

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	srv, _, _ := newTestServer(t)

	t.Run("signup binds the session and greets once", func(t *testing.T) {
		resp := doForm(t, srv, http.MethodPost, "/register", url.Values{
			"username": {"camper_a"},
			"email":    {"camper_a@example.com"},
			"password": {"trailmix99"},
		}, "")
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/campgrounds", resp.Header.Get("Location"))

		cookie := sessionCookie(resp)
		require.NotEmpty(t, cookie)

		texts := flashTexts(t, srv, cookie)
		require.Len(t, texts, 1)
		assert.Contains(t, texts[0], "Welcome to Campstead")

		// Flash is consume-once.
		assert.Empty(t, flashTexts(t, srv, cookie))
	})

	t.Run("duplicate username bounces back to the form", func(t *testing.T) {
		resp := doForm(t, srv, http.MethodPost, "/register", url.Values{
			"username": {"camper_a"},
			"email":    {"second@example.com"},
			"password": {"trailmix99"},
		}, "")
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/register", resp.Header.Get("Location"))

		texts := flashTexts(t, srv, sessionCookie(resp))
		require.Len(t, texts, 1)
		assert.Contains(t, texts[0], "already taken")
	})

	t.Run("invalid fields are reported together", func(t *testing.T) {
		resp := doForm(t, srv, http.MethodPost, "/register", url.Values{
			"username": {"x"},
			"email":    {"nope"},
			"password": {"short"},
		}, "")
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/register", resp.Header.Get("Location"))

		texts := flashTexts(t, srv, sessionCookie(resp))
		require.Len(t, texts, 1)
		assert.Contains(t, texts[0], "username")
		assert.Contains(t, texts[0], "email")
		assert.Contains(t, texts[0], "password")
	})
}

func TestLogin(t *testing.T) {
	srv, _, _ := newTestServer(t)
	registerUser(t, srv, "camper_b")

	t.Run("wrong password bounces to login", func(t *testing.T) {
		resp := doForm(t, srv, http.MethodPost, "/login", url.Values{
			"username": {"camper_b"},
			"password": {"wrongpass1"},
		}, "")
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		texts := flashTexts(t, srv, sessionCookie(resp))
		require.Len(t, texts, 1)
		assert.Equal(t, "Invalid username or password", texts[0])
	})

	t.Run("unknown user gets the same message", func(t *testing.T) {
		resp := doForm(t, srv, http.MethodPost, "/login", url.Values{
			"username": {"ghost"},
			"password": {"whatever1"},
		}, "")
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		texts := flashTexts(t, srv, sessionCookie(resp))
		require.Len(t, texts, 1)
		assert.Equal(t, "Invalid username or password", texts[0])
	})

	t.Run("valid credentials land on the index", func(t *testing.T) {
		resp := doForm(t, srv, http.MethodPost, "/login", url.Values{
			"username": {"camper_b"},
			"password": {"trailmix99"},
		}, "")
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/campgrounds", resp.Header.Get("Location"))

		body := decodeJSON(t, doGet(t, srv, "/session/flash", sessionCookie(resp)))
		user, ok := body["currentUser"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "camper_b", user["username"])
	})
}

func TestReturnTo(t *testing.T) {
	srv, _, _ := newTestServer(t)
	registerUser(t, srv, "camper_c")

	// Anonymous visit to a guarded page remembers the target.
	resp := doGet(t, srv, "/campgrounds/new", "")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)

	texts := flashTexts(t, srv, cookie)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "signed in")

	// Login resumes at the remembered target.
	resp = doForm(t, srv, http.MethodPost, "/login", url.Values{
		"username": {"camper_c"},
		"password": {"trailmix99"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/campgrounds/new", resp.Header.Get("Location"))
	flashTexts(t, srv, cookie)

	// The target is consumed; a second login falls back to the index.
	resp = doForm(t, srv, http.MethodPost, "/login", url.Values{
		"username": {"camper_c"},
		"password": {"trailmix99"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/campgrounds", resp.Header.Get("Location"))
}

func TestLogout(t *testing.T) {
	srv, _, _ := newTestServer(t)
	cookie := registerUser(t, srv, "camper_d")

	resp := doForm(t, srv, http.MethodPost, "/logout", nil, cookie)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/campgrounds", resp.Header.Get("Location"))

	// The goodbye flash survives the unbinding; the identity does not.
	body := decodeJSON(t, doGet(t, srv, "/session/flash", cookie))
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].(map[string]any)["text"], "Goodbye")
	assert.Nil(t, body["currentUser"])

	// Guarded routes treat the session as anonymous again.
	resp = doGet(t, srv, "/campgrounds/new", cookie)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
