package models

// CandidateProfile is the canonical structured output of the parsing
// pipeline. It is produced once by the enrichment stage and treated as an
// immutable snapshot afterwards; match scoring reads it but never edits it.
type CandidateProfile struct {
	ContactInfo    ContactInfo      `json:"contact_info"`
	Summary        string           `json:"summary"`
	Skills         []Skill          `json:"skills"`
	Projects       []Project        `json:"projects"`
	Experience     []Experience     `json:"experience"`
	Education      []Education      `json:"education"`
	Certifications []Certification  `json:"certifications"`
	Aggregate      ProfileAggregate `json:"aggregate"`
}

type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Location string `json:"location"`
}

// Skill carries the evidence tags that substantiate it, e.g.
// "project:Chat App", "work:Acme", "internship:Globex",
// "certification:AWS Certified Developer" or "resume:mentioned".
type Skill struct {
	Name             string   `json:"name"`
	Evidence         []string `json:"evidence"`
	MonthsExperience int      `json:"months_experience"`
	Proficiency      string   `json:"proficiency"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Duration     string   `json:"duration"`
	Achievements []string `json:"achievements"`
	URL          string   `json:"url"`
}

type Experience struct {
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	Type             string   `json:"type"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	DurationMonths   int      `json:"duration_months"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Technologies     []string `json:"technologies"`
}

type Education struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Year        string   `json:"year"`
	GPA         string   `json:"gpa"`
	Coursework  []string `json:"coursework"`
}

type Certification struct {
	Name         string   `json:"name"`
	Issuer       string   `json:"issuer"`
	Date         string   `json:"date"`
	Technologies []string `json:"technologies"`
}

type ProfileAggregate struct {
	TotalExperienceMonths int      `json:"total_experience_months"`
	ExperienceLevel       string   `json:"experience_level"`
	StrongestSkills       []string `json:"strongest_skills"`
	Volunteering          []string `json:"volunteering"`
	Languages             []string `json:"languages"`
}
