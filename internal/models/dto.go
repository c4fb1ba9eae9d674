package models

type UploadResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Filename string `json:"filename"`
}

type ResumeStatusResponse struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Filename     string            `json:"filename"`
	Profile      *CandidateProfile `json:"profile,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
}

type CreateJobRequest struct {
	Title          string           `json:"title" validate:"required"`
	Company        string           `json:"company"`
	RecruiterID    string           `json:"recruiter_id"`
	RawDescription string           `json:"raw_description"`
	Requirements   *JobRequirements `json:"requirements" validate:"required"`
}

type JobMatchEntry struct {
	CandidateID string          `json:"candidate_id"`
	ResumeID    string          `json:"resume_id"`
	Score       int             `json:"score"`
	Breakdown   *ScoreBreakdown `json:"breakdown"`
}

type ResumeMatchEntry struct {
	JobID     string          `json:"job_id"`
	JobTitle  string          `json:"job_title"`
	Company   string          `json:"company"`
	Score     int             `json:"score"`
	Breakdown *ScoreBreakdown `json:"breakdown"`
}
