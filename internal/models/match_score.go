package models

import (
	"time"

	"github.com/google/uuid"
)

type ScoreBreakdown struct {
	SkillsScore     int      `json:"skills_score"`
	ExperienceScore int      `json:"experience_score"`
	EducationScore  int      `json:"education_score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

// MatchScore caches one computed (job, resume) pairing. At most one row per
// pair exists and a written row is never recomputed, even if the underlying
// profile changes later: scores are snapshots, not live views.
type MatchScore struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_match_scores_job_resume" json:"job_id"`
	ResumeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_match_scores_job_resume" json:"resume_id"`
	CandidateID uuid.UUID       `gorm:"type:uuid;not null" json:"candidate_id"`
	Score       int             `gorm:"not null" json:"score"`
	Breakdown   *ScoreBreakdown `gorm:"type:jsonb;serializer:json" json:"breakdown,omitempty"`
	ComputedAt  time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"computed_at"`
}

func (MatchScore) TableName() string {
	return "match_scores"
}
