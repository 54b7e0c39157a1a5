package server

import (
	"io"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadMedia handles POST /api/uploads. The multipart form carries the image
// under "file" and the target under "purpose" (profile_pic, cover_pic or
// post). The response carries the public URL and, for posts, the created
// post record.
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	purpose := service.UploadPurpose(c.FormValue("purpose", string(service.PurposePost)))

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, s.config.MaxUploadSizeBytes()+1))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	result, err := s.mediaService.UploadAndLink(c.Context(), service.UploadInput{
		OwnerID:  currentUserID(c),
		Purpose:  purpose,
		Filename: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
