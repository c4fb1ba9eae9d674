package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clarityhire/internal/models"
	"clarityhire/internal/repositories"
	"clarityhire/internal/services"
)

type UploadHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	worker         services.Worker
	maxFileSize    int64
}

func NewUploadHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	worker services.Worker,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /resumes/upload. The call creates the record,
// dispatches a parse task and returns immediately; parsing progress is
// observed by polling the status endpoint.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are supported",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	var userID uuid.UUID
	if raw := c.FormValue("user_id"); raw != "" {
		userID, err = uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid user_id format",
			})
		}
	}

	id, filePath, err := h.storageService.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	resume := &models.Resume{
		ID:               id,
		UserID:           userID,
		OriginalFilename: file.Filename,
		FilePath:         filePath,
		FileSizeBytes:    file.Size,
		Status:           models.StatusPending,
		CreatedAt:        time.Now(),
	}

	if err := h.resumeRepo.Create(resume); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(fmt.Sprintf("%s.pdf", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create resume record",
		})
	}

	// A failed enqueue is not fatal: the record is committed and the worker
	// poller re-dispatches stale pending records.
	if err := h.worker.Enqueue(services.ParseTask{ResumeID: resume.ID, FilePath: filePath}); err != nil {
		log.Printf("⚠️  Failed to enqueue resume %s: %v\n", resume.ID, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.UploadResponse{
		ID:       resume.ID.String(),
		Status:   string(resume.Status),
		Filename: resume.OriginalFilename,
	})
}
