package repository

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isForeignKeyError(err) {
			return models.NewNotFoundError("User", post.UserID)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUserPosts(ctx, post.UserID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListByUser returns a user's posts newest first. The first page is cached;
// paginated reads go straight to the database.
func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	fetch := func(dest *[]models.Post) error {
		if err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(dest).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	var posts []models.Post
	if offset != 0 {
		if err := fetch(&posts); err != nil {
			return nil, err
		}
		return posts, nil
	}

	err := cache.Aside(ctx, cache.UserPostsKey(userID), &posts, cache.UserPostsTTL, func() error {
		return fetch(&posts)
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL foreign key violation SQLSTATE 23503; SQLite phrasing for tests.
	return strings.Contains(msg, "foreign key") || strings.Contains(msg, "23503")
}
