package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"skillswap/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	post := &models.Post{UserID: 1, ImageURL: "https://cdn.test/post-images/1-100.jpg"}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Create_MissingUserIsNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnError(errors.New(`ERROR: insert or update on table "posts" violates foreign key constraint "fk_users_posts" (SQLSTATE 23503)`))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Post{UserID: 99, ImageURL: "https://cdn.test/x.jpg"})
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListByUser_NewestFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "image_url"}).
		AddRow(3, 1, "https://cdn.test/post-images/1-300.jpg").
		AddRow(1, 1, "https://cdn.test/post-images/1-100.jpg")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE user_id = $1 AND "posts"."deleted_at" IS NULL ORDER BY created_at DESC LIMIT $2`)).
		WithArgs(1, 20).
		WillReturnRows(rows)

	posts, err := repo.ListByUser(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, uint(3), posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListByUser_Paginated(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE user_id = $1 AND "posts"."deleted_at" IS NULL ORDER BY created_at DESC LIMIT $2 OFFSET $3`)).
		WithArgs(1, 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "image_url"}))

	posts, err := repo.ListByUser(context.Background(), 1, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 AND "posts"."deleted_at" IS NULL ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(42, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	post, err := repo.GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.Nil(t, post)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}
