package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
	"skillswap/internal/storage"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// UploadPurpose selects where an uploaded image lands and what it links to.
type UploadPurpose string

const (
	PurposeProfilePic UploadPurpose = "profile_pic"
	PurposeCoverPic   UploadPurpose = "cover_pic"
	PurposePost       UploadPurpose = "post"
)

// UploadResult reports where the blob ended up and, for post uploads, the
// created post record.
type UploadResult struct {
	URL  string       `json:"url"`
	Post *models.Post `json:"post,omitempty"`
}

type UploadInput struct {
	OwnerID  uint
	Purpose  UploadPurpose
	Filename string
	Content  []byte
}

// MediaService runs the media ingestion pipeline: validate, generate a
// storage key, upload, resolve the public URL, and link the URL into the
// owning record.
type MediaService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	store    storage.ObjectStore

	profilePicBucket   string
	postImageBucket    string
	maxUploadSizeBytes int64

	// now is injectable so tests can pin the timestamp component of keys.
	now func() time.Time
}

func NewMediaService(userRepo repository.UserRepository, postRepo repository.PostRepository, store storage.ObjectStore, cfg *config.Config) *MediaService {
	return &MediaService{
		userRepo:           userRepo,
		postRepo:           postRepo,
		store:              store,
		profilePicBucket:   cfg.ProfilePicBucket,
		postImageBucket:    cfg.PostImageBucket,
		maxUploadSizeBytes: cfg.MaxUploadSizeBytes(),
		now:                time.Now,
	}
}

// UploadAndLink uploads the image and links its public URL into the owning
// record. Once the blob is stored, a failure in the relational step returns a
// LinkError carrying the URL; the blob is never rolled back.
func (s *MediaService) UploadAndLink(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.OwnerID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	contentType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(contentType) {
		return nil, models.NewValidationError("Invalid image type")
	}
	if _, _, err := image.Decode(bytes.NewReader(in.Content)); err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	bucket, key, overwrite, err := s.destinationFor(in)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, bucket, key, in.Content, contentType, overwrite); err != nil {
		observability.UploadsTotal.WithLabelValues(bucket, "store_failed").Inc()
		return nil, err
	}
	url := s.store.PublicURL(bucket, key)
	observability.UploadBytes.WithLabelValues(bucket).Observe(float64(len(in.Content)))

	result := &UploadResult{URL: url}
	if err := s.link(ctx, in, url, result); err != nil {
		observability.UploadsTotal.WithLabelValues(bucket, "link_failed").Inc()
		middleware.Logger.ErrorContext(ctx, "uploaded blob could not be linked",
			"bucket", bucket, "key", key, "url", url, "error", err)
		return nil, &models.LinkError{URL: url, Err: err}
	}

	observability.UploadsTotal.WithLabelValues(bucket, "ok").Inc()
	return result, nil
}

// destinationFor maps the upload purpose to bucket, key and overwrite policy.
// Profile and cover images live under a per-user prefix and may be replaced;
// post images are flat per-upload objects that must never be overwritten.
func (s *MediaService) destinationFor(in UploadInput) (bucket, key string, overwrite bool, err error) {
	ext := extensionFor(in.Filename)
	millis := s.now().UnixMilli()

	switch in.Purpose {
	case PurposeProfilePic, PurposeCoverPic:
		return s.profilePicBucket, fmt.Sprintf("%d/%s-%d.%s", in.OwnerID, in.Purpose, millis, ext), true, nil
	case PurposePost:
		return s.postImageBucket, fmt.Sprintf("%d-%d.%s", in.OwnerID, millis, ext), false, nil
	default:
		return "", "", false, models.NewValidationError("Unknown upload purpose")
	}
}

func (s *MediaService) link(ctx context.Context, in UploadInput, url string, result *UploadResult) error {
	switch in.Purpose {
	case PurposeProfilePic:
		return s.userRepo.SetImageURL(ctx, in.OwnerID, repository.ImageColumnProfilePic, url)
	case PurposeCoverPic:
		return s.userRepo.SetImageURL(ctx, in.OwnerID, repository.ImageColumnCoverPic, url)
	case PurposePost:
		post := &models.Post{UserID: in.OwnerID, ImageURL: url}
		if err := s.postRepo.Create(ctx, post); err != nil {
			return err
		}
		result.Post = post
		return nil
	}
	return models.NewValidationError("Unknown upload purpose")
}

// extensionFor takes the extension from the client filename, falling back to
// jpg when the filename carries none.
func extensionFor(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "jpg"
	}
	return strings.ToLower(ext)
}

func isAllowedImageMIME(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
