package service

import (
	"context"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

const maxBioLen = 500

// UserService handles profile reads and partial profile updates.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// UpdateProfileInput carries the fields a profile update may touch. Nil
// pointers mean "leave unchanged", so a client can clear a field by sending
// an empty string and skip it by omitting the key.
type UpdateProfileInput struct {
	UserID     uint
	FullName   *string
	Username   *string
	Mobile     *string
	Bio        *string
	ProfilePic *string
	CoverPic   *string
	Skills     *[]string
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo}
}

// GetProfile returns the sanitized profile, cache-aside on the user key. Only
// the sanitized copy is ever cached; writes invalidate through the repository.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	var profile models.User
	err := cache.Aside(ctx, cache.UserKey(id), &profile, cache.UserTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		profile = *user.Sanitized()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserService) GetProfileWithPosts(ctx context.Context, id uint, postLimit int) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithPosts(ctx, id, postLimit)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *UserService) ListUserPosts(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.ListByUser(ctx, userID, limit, offset)
}

// UpdateProfile applies the provided fields on top of the stored profile and
// persists the merge. Credentials and counters are not reachable from here.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, models.NewValidationError("Full name cannot be empty")
		}
		user.FullName = name
	}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = username
	}
	if in.Mobile != nil {
		user.Mobile = strings.TrimSpace(*in.Mobile)
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.ProfilePic != nil {
		user.ProfilePic = strings.TrimSpace(*in.ProfilePic)
	}
	if in.CoverPic != nil {
		user.CoverPic = strings.TrimSpace(*in.CoverPic)
	}
	if in.Skills != nil {
		skills := make([]string, 0, len(*in.Skills))
		for _, skill := range *in.Skills {
			if trimmed := strings.TrimSpace(skill); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
		user.Skills = skills
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitized(), nil
}
