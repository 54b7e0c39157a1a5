package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mediaTestConfig() *config.Config {
	return &config.Config{
		ProfilePicBucket: "profile-pics",
		PostImageBucket:  "post-images",
		MaxUploadSizeMB:  10,
	}
}

// pngBytes returns a minimal valid PNG.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func newMediaService(userRepo repository.UserRepository, postRepo repository.PostRepository, store storage.ObjectStore) *MediaService {
	svc := NewMediaService(userRepo, postRepo, store, mediaTestConfig())
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestMediaService_UploadProfilePic(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore("https://cdn.test")
	repo := noopUserRepo()
	var linkedColumn, linkedURL string
	repo.setImageURLFn = func(_ context.Context, id uint, column, url string) error {
		linkedColumn, linkedURL = column, url
		return nil
	}

	svc := newMediaService(repo, noopPostRepo(), store)
	result, err := svc.UploadAndLink(context.Background(), UploadInput{
		OwnerID:  3,
		Purpose:  PurposeProfilePic,
		Filename: "me.png",
		Content:  pngBytes(t),
	})
	require.NoError(t, err)

	wantKey := "3/profile_pic-1700000000000.png"
	assert.Equal(t, "https://cdn.test/profile-pics/"+wantKey, result.URL)
	assert.Equal(t, repository.ImageColumnProfilePic, linkedColumn)
	assert.Equal(t, result.URL, linkedURL)

	obj, ok := store.Get("profile-pics", wantKey)
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Nil(t, result.Post)
}

func TestMediaService_ProfilePicReplacesExistingKey(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore("")
	content := pngBytes(t)
	require.NoError(t, store.Put(context.Background(), "profile-pics", "3/cover_pic-1700000000000.png", []byte("old"), "image/png", false))

	svc := newMediaService(noopUserRepo(), noopPostRepo(), store)
	_, err := svc.UploadAndLink(context.Background(), UploadInput{
		OwnerID:  3,
		Purpose:  PurposeCoverPic,
		Filename: "cover.png",
		Content:  content,
	})
	require.NoError(t, err, "profile and cover uploads replace existing keys")

	obj, _ := store.Get("profile-pics", "3/cover_pic-1700000000000.png")
	assert.Equal(t, content, obj.Data)
}

func TestMediaService_UploadPost(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore("https://cdn.test")
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 11
		return nil
	}

	svc := newMediaService(noopUserRepo(), posts, store)
	result, err := svc.UploadAndLink(context.Background(), UploadInput{
		OwnerID:  3,
		Purpose:  PurposePost,
		Filename: "sunset.png",
		Content:  pngBytes(t),
	})
	require.NoError(t, err)

	require.NotNil(t, result.Post)
	assert.Equal(t, uint(11), result.Post.ID)
	assert.Equal(t, uint(3), result.Post.UserID)
	assert.Equal(t, "https://cdn.test/post-images/3-1700000000000.png", result.Post.ImageURL)
	assert.Equal(t, result.URL, result.Post.ImageURL)
}

func TestMediaService_PostUploadNeverOverwrites(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore("")
	require.NoError(t, store.Put(context.Background(), "post-images", "3-1700000000000.png", []byte("old"), "image/png", false))

	svc := newMediaService(noopUserRepo(), noopPostRepo(), store)
	_, err := svc.UploadAndLink(context.Background(), UploadInput{
		OwnerID:  3,
		Purpose:  PurposePost,
		Filename: "sunset.png",
		Content:  pngBytes(t),
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.CodeOf(err))

	obj, _ := store.Get("post-images", "3-1700000000000.png")
	assert.Equal(t, []byte("old"), obj.Data, "existing post image must not be replaced")
}

func TestMediaService_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input UploadInput
	}{
		{"missing owner", UploadInput{Purpose: PurposePost, Filename: "a.png"}},
		{"empty file", UploadInput{OwnerID: 1, Purpose: PurposePost, Filename: "a.png"}},
		{"not an image", UploadInput{OwnerID: 1, Purpose: PurposePost, Filename: "a.txt", Content: []byte("plain text, not pixels")}},
		{"unknown purpose", UploadInput{OwnerID: 1, Purpose: "banner", Filename: "a.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := storage.NewMemoryStore("")
			svc := newMediaService(noopUserRepo(), noopPostRepo(), store)

			in := tt.input
			if tt.name == "unknown purpose" {
				in.Content = pngBytes(t)
			}
			_, err := svc.UploadAndLink(context.Background(), in)
			assertValidationError(t, err)
			assert.Zero(t, store.Len("post-images"), "nothing may be stored on a rejected upload")
			assert.Zero(t, store.Len("profile-pics"))
		})
	}
}

func TestMediaService_FileTooLarge(t *testing.T) {
	t.Parallel()

	cfg := mediaTestConfig()
	cfg.MaxUploadSizeMB = 1
	store := storage.NewMemoryStore("")
	svc := NewMediaService(noopUserRepo(), noopPostRepo(), store, cfg)

	content := make([]byte, cfg.MaxUploadSizeBytes()+1)
	_, err := svc.UploadAndLink(context.Background(), UploadInput{
		OwnerID: 1, Purpose: PurposePost, Filename: "big.png", Content: content,
	})
	assertValidationError(t, err)
	assert.Zero(t, store.Len("post-images"))
}

func TestMediaService_LinkFailureKeepsBlobAndReportsURL(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore("https://cdn.test")
	posts := noopPostRepo()
	posts.createFn = func(context.Context, *models.Post) error {
		return models.NewInternalError(fmt.Errorf("connection reset"))
	}

	svc := newMediaService(noopUserRepo(), posts, store)
	_, err := svc.UploadAndLink(context.Background(), UploadInput{
		OwnerID:  3,
		Purpose:  PurposePost,
		Filename: "sunset.png",
		Content:  pngBytes(t),
	})

	var linkErr *models.LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, "https://cdn.test/post-images/3-1700000000000.png", linkErr.URL)

	_, ok := store.Get("post-images", "3-1700000000000.png")
	assert.True(t, ok, "the blob stays addressable after a link failure")
}

func TestMediaService_ExtensionFallsBackToJPG(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore("")
	svc := newMediaService(noopUserRepo(), noopPostRepo(), store)

	_, err := svc.UploadAndLink(context.Background(), UploadInput{
		OwnerID:  5,
		Purpose:  PurposePost,
		Filename: "no-extension",
		Content:  pngBytes(t),
	})
	require.NoError(t, err)

	_, ok := store.Get("post-images", "5-1700000000000.jpg")
	assert.True(t, ok, "missing filename extension defaults to jpg")
}
