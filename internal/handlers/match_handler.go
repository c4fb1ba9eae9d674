package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clarityhire/internal/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// HandleMatchesForJob handles GET /matches/job/:id — all parsed candidates
// ranked against one job.
func (h *MatchHandler) HandleMatchesForJob(c *fiber.Ctx) error {
	idParam := c.Params("id")
	jobID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	matches, err := h.matchService.MatchesForJob(c.Context(), jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(matches)
}

// HandleMatchesForResume handles GET /matches/resume/:id — all jobs ranked
// for one candidate resume.
func (h *MatchHandler) HandleMatchesForResume(c *fiber.Ctx) error {
	idParam := c.Params("id")
	resumeID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	matches, err := h.matchService.MatchesForResume(c.Context(), resumeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(matches)
}
