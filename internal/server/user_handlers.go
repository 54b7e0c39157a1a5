package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me. Absent keys leave fields
// untouched; present keys overwrite, including with empty values.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FullName   *string   `json:"full_name"`
		Username   *string   `json:"username"`
		Mobile     *string   `json:"mobile"`
		Bio        *string   `json:"bio"`
		ProfilePic *string   `json:"profile_pic"`
		CoverPic   *string   `json:"cover_pic"`
		Skills     *[]string `json:"skills"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:     currentUserID(c),
		FullName:   req.FullName,
		Username:   req.Username,
		Mobile:     req.Mobile,
		Bio:        req.Bio,
		ProfilePic: req.ProfilePic,
		CoverPic:   req.CoverPic,
		Skills:     req.Skills,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfileWithPosts(c.Context(), id, 10)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}
