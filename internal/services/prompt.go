package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt creates the prompt for structured resume
// extraction. The target schema is fixed; exactly one JSON object is
// expected back.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert Resume Parser. Extract the following information from the resume text below and return ONLY valid JSON.
Do not add any markdown formatting or explanations.

Structure:
{
  "contact_info": { "name": "", "email": "", "phone": "", "linkedin": "", "location": "" },
  "summary": "",
  "skills": [],
  "projects": [ { "title": "", "description": "", "technologies": [], "duration": "", "achievements": [], "url": "" } ],
  "experience": [ { "company": "", "role": "", "start_date": "", "end_date": "", "description": "", "responsibilities": [], "technologies": [] } ],
  "education": [ { "institution": "", "degree": "", "field": "", "start_date": "", "end_date": "", "year": "", "gpa": "", "coursework": [] } ],
  "certifications": [ { "name": "", "issuer": "", "date": "", "technologies": [] } ],
  "volunteering": [],
  "languages": []
}

Dates should be formatted as "<Month> <Year>" (e.g. "Jan 2021") or a bare year. Use "Present" for ongoing roles.

Resume Text:
%s`, resumeText)
}
