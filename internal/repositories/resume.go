package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clarityhire/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindAll() ([]models.Resume, error)
	FindByUser(userID uuid.UUID) ([]models.Resume, error)
	FindParsed() ([]models.Resume, error)
	FindStalePending(olderThan time.Time, limit int) ([]models.Resume, error)
	TransitionStatus(id uuid.UUID, from, to models.ResumeStatus) (bool, error)
	MarkParsed(id uuid.UUID, profile *models.CandidateProfile) error
	MarkFailed(id uuid.UUID, errorMsg string) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("resume not found")
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

func (r *resumeRepository) FindAll() ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Order("created_at DESC").Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

func (r *resumeRepository) FindByUser(userID uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes for user: %w", err)
	}
	return resumes, nil
}

func (r *resumeRepository) FindParsed() ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("status = ?", models.StatusParsed).
		Order("created_at ASC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find parsed resumes: %w", err)
	}
	return resumes, nil
}

// FindStalePending returns pending records whose dispatch was either lost or
// never happened; the worker poller re-enqueues them.
func (r *resumeRepository) FindStalePending(olderThan time.Time, limit int) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("status = ? AND created_at < ?", models.StatusPending, olderThan).
		Order("created_at ASC").
		Limit(limit).
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stale pending resumes: %w", err)
	}
	return resumes, nil
}

// TransitionStatus performs a guarded status update: the row is touched only
// if its current status equals the expected one. Returns false when no row
// matched, which is how duplicate queue deliveries are detected.
func (r *resumeRepository) TransitionStatus(id uuid.UUID, from, to models.ResumeStatus) (bool, error) {
	result := r.db.Model(&models.Resume{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)

	if result.Error != nil {
		return false, fmt.Errorf("failed to transition status: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *resumeRepository) MarkParsed(id uuid.UUID, profile *models.CandidateProfile) error {
	now := time.Now()
	result := r.db.Model(&models.Resume{}).
		Where("id = ? AND status = ?", id, models.StatusParsing).
		Select("status", "profile", "parsed_at").
		Updates(models.Resume{
			Status:   models.StatusParsed,
			Profile:  profile,
			ParsedAt: &now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark resume parsed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not in parsing state")
	}

	return nil
}

func (r *resumeRepository) MarkFailed(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ? AND status = ?", id, models.StatusParsing).
		Select("status", "error_message").
		Updates(models.Resume{
			Status:       models.StatusFailed,
			ErrorMessage: &errorMsg,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark resume failed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not in parsing state")
	}

	return nil
}
