package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	UserPostsKeyPrefix = "user:%d:posts"
)

const (
	UserTTL      = 5 * time.Minute
	UserPostsTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserPostsKey(userID uint) string {
	return fmt.Sprintf(UserPostsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateUserPosts(ctx context.Context, userID uint) {
	Invalidate(ctx, UserPostsKey(userID))
}
