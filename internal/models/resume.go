package models

import (
	"time"

	"github.com/google/uuid"
)

type ResumeStatus string

const (
	StatusPending ResumeStatus = "pending"
	StatusParsing ResumeStatus = "parsing"
	StatusParsed  ResumeStatus = "parsed"
	StatusFailed  ResumeStatus = "failed"
)

// IsTerminal reports whether no further automatic transition may occur.
func (s ResumeStatus) IsTerminal() bool {
	return s == StatusParsed || s == StatusFailed
}

type Resume struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID         `gorm:"type:uuid;index" json:"user_id"`
	OriginalFilename string            `gorm:"type:text;not null" json:"original_filename"`
	FilePath         string            `gorm:"type:text;not null" json:"file_path"`
	FileSizeBytes    int64             `gorm:"not null" json:"file_size_bytes"`
	Status           ResumeStatus      `gorm:"not null;default:'pending'" json:"status"`
	Profile          *CandidateProfile `gorm:"type:jsonb;serializer:json" json:"profile,omitempty"`
	ErrorMessage     *string           `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ParsedAt         *time.Time        `gorm:"type:timestamp" json:"parsed_at,omitempty"`
}

func (Resume) TableName() string {
	return "resumes"
}
