package models

import (
	"time"

	"github.com/google/uuid"
)

// JobRequirements is the structured output of the job-description analyzer,
// an external collaborator whose pipeline mirrors the resume one. It is
// consumed read-only by match scoring.
type JobRequirements struct {
	RequiredSkills      []string `json:"required_skills"`
	PreferredSkills     []string `json:"preferred_skills"`
	ExperienceYears     float64  `json:"experience_years"`
	EducationLevel      string   `json:"education_level"`
	KeyResponsibilities []string `json:"key_responsibilities"`
}

type Job struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecruiterID    uuid.UUID        `gorm:"type:uuid;index" json:"recruiter_id"`
	Title          string           `gorm:"type:text;not null" json:"title"`
	Company        string           `gorm:"type:text" json:"company"`
	RawDescription string           `gorm:"type:text" json:"raw_description"`
	Requirements   *JobRequirements `gorm:"type:jsonb;serializer:json" json:"requirements,omitempty"`
	CreatedAt      time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Job) TableName() string {
	return "jobs"
}
