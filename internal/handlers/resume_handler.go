package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clarityhire/internal/models"
	"clarityhire/internal/repositories"
)

type ResumeHandler struct {
	resumeRepo repositories.ResumeRepository
}

func NewResumeHandler(resumeRepo repositories.ResumeRepository) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo: resumeRepo,
	}
}

// HandleGetResume handles GET /resumes/:id — the poll interface for parsing
// status. The profile is only present once the full enrichment succeeded;
// a failed parse carries the recorded error message instead.
func (h *ResumeHandler) HandleGetResume(c *fiber.Ctx) error {
	idParam := c.Params("id")
	resumeID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	response := models.ResumeStatusResponse{
		ID:       resume.ID.String(),
		Status:   string(resume.Status),
		Filename: resume.OriginalFilename,
	}

	if resume.Status == models.StatusParsed {
		response.Profile = resume.Profile
	}

	if resume.Status == models.StatusFailed {
		response.ErrorMessage = resume.ErrorMessage
	}

	return c.JSON(response)
}

// HandleListResumes handles GET /resumes, optionally filtered by user_id.
func (h *ResumeHandler) HandleListResumes(c *fiber.Ctx) error {
	var resumes []models.Resume
	var err error

	if raw := c.Query("user_id"); raw != "" {
		userID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid user_id format",
			})
		}
		resumes, err = h.resumeRepo.FindByUser(userID)
	} else {
		resumes, err = h.resumeRepo.FindAll()
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list resumes",
		})
	}

	responses := []models.ResumeStatusResponse{}
	for _, resume := range resumes {
		responses = append(responses, models.ResumeStatusResponse{
			ID:       resume.ID.String(),
			Status:   string(resume.Status),
			Filename: resume.OriginalFilename,
		})
	}

	return c.JSON(responses)
}
