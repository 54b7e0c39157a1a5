package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	_, app, _ := newTestServer(t)
	token, _ := signupUser(t, app, "Ada Lovelace", "ada", "ada@example.com", "secret123")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ada", body["username"])
	assert.Equal(t, "Ada Lovelace", body["full_name"])
}

func TestUpdateMyProfile_PartialUpdate(t *testing.T) {
	_, app, _ := newTestServer(t)
	token, _ := signupUser(t, app, "Ada Lovelace", "ada", "ada@example.com", "secret123")

	resp, body := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]any{
		"bio":    "I trade math lessons for piano lessons",
		"skills": []string{"math", "piano"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "I trade math lessons for piano lessons", body["bio"])
	assert.Equal(t, "ada", body["username"], "absent fields stay untouched")
	assert.Equal(t, []any{"math", "piano"}, body["skills"])

	// A later update without bio leaves the stored bio alone.
	resp, body = doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]any{
		"full_name": "Ada King",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ada King", body["full_name"])
	assert.Equal(t, "I trade math lessons for piano lessons", body["bio"])
}

func TestUpdateMyProfile_UsernameConflict(t *testing.T) {
	_, app, _ := newTestServer(t)
	signupUser(t, app, "Ada Lovelace", "ada", "ada@example.com", "secret123")
	token, _ := signupUser(t, app, "Bob", "bob", "bob@example.com", "hunter2xyz")

	resp, body := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]any{
		"username": "ada",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestGetUserProfile(t *testing.T) {
	_, app, _ := newTestServer(t)
	token, adaID := signupUser(t, app, "Ada Lovelace", "ada", "ada@example.com", "secret123")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(adaID), body["id"])

	t.Run("unknown user", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/users/999", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "User not found", body["error"])
	})

	t.Run("bad id", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/users/abc", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetUserPosts_Empty(t *testing.T) {
	_, app, _ := newTestServer(t)
	token, _ := signupUser(t, app, "Ada Lovelace", "ada", "ada@example.com", "secret123")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/1/posts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["posts"])
}

func TestGetAllUsers(t *testing.T) {
	_, app, _ := newTestServer(t)
	token, _ := signupUser(t, app, "Ada Lovelace", "ada", "ada@example.com", "secret123")
	signupUser(t, app, "Bob", "bob", "bob@example.com", "hunter2xyz")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/?limit=10", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := body["users"].([]any)
	assert.Len(t, users, 2)
}
