package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/middleware"
	"skillswap/internal/repository"
	"skillswap/internal/service"
	"skillswap/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server against an in-memory SQLite database and an
// in-memory object store, with all routes registered.
func newTestServer(t *testing.T) (*Server, *fiber.App, *storage.MemoryStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:        "test_secret",
		Env:              "test",
		ProfilePicBucket: "profile-pics",
		PostImageBucket:  "post-images",
		MaxUploadSizeMB:  10,
	}
	middleware.InitMiddleware(cfg)

	store := storage.NewMemoryStore("https://cdn.test")
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		config:   cfg,
		db:       db,
		store:    store,
		userRepo: userRepo,
		postRepo: postRepo,
	}
	s.identityService = service.NewIdentityService(userRepo)
	s.userService = service.NewUserService(userRepo, postRepo)
	s.mediaService = service.NewMediaService(userRepo, postRepo, store, cfg)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "response body: %s", raw)
	}
	return resp, decoded
}

// signupUser registers an account and returns its token and user ID.
func signupUser(t *testing.T, app *fiber.App, fullName, username, email, password string) (string, uint) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"full_name": fullName,
		"username":  username,
		"email":     email,
		"password":  password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup response: %v", body)

	token := body["token"].(string)
	user := body["user"].(map[string]any)
	return token, uint(user["id"].(float64))
}

func doMultipart(t *testing.T, app *fiber.App, token, filename, purpose string, content []byte) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	if purpose != "" {
		require.NoError(t, writer.WriteField("purpose", purpose))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "response body: %s", raw)
	}
	return resp, decoded
}
