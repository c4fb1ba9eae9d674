package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clarityhire/internal/models"
)

type MatchScoreRepository interface {
	Find(jobID, resumeID uuid.UUID) (*models.MatchScore, error)
	GetOrCreate(score *models.MatchScore) (*models.MatchScore, error)
}

type matchScoreRepository struct {
	db *gorm.DB
}

func NewMatchScoreRepository(db *gorm.DB) MatchScoreRepository {
	return &matchScoreRepository{db: db}
}

// Find returns the cached score for a pair, or nil when none exists yet.
func (r *matchScoreRepository) Find(jobID, resumeID uuid.UUID) (*models.MatchScore, error) {
	var score models.MatchScore
	err := r.db.
		Where("job_id = ? AND resume_id = ?", jobID, resumeID).
		First(&score).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find match score: %w", err)
	}
	return &score, nil
}

// GetOrCreate inserts the freshly computed score unless another request got
// there first. The unique (job_id, resume_id) index plus ON CONFLICT DO
// NOTHING makes the operation race-free; when the insert is skipped the
// already-persisted row wins and is returned instead.
func (r *matchScoreRepository) GetOrCreate(score *models.MatchScore) (*models.MatchScore, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}, {Name: "resume_id"}},
		DoNothing: true,
	}).Create(score)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to insert match score: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		return score, nil
	}

	existing, err := r.Find(score.JobID, score.ResumeID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("match score vanished after conflicting insert")
	}
	return existing, nil
}
