package services

import (
	"sort"
	"strings"
	"time"

	"clarityhire/internal/models"
)

// EnrichmentService turns a raw extraction draft into the canonical
// CandidateProfile. It is pure and deterministic: no external calls, no
// errors — malformed input degrades via defaulting.
type EnrichmentService interface {
	Enrich(draft map[string]interface{}, now time.Time) *models.CandidateProfile
}

type enrichmentService struct{}

func NewEnrichmentService() EnrichmentService {
	return &enrichmentService{}
}

type synonymEntry struct {
	alias     string
	canonical string
}

// Fixed synonym table, looked up on the lower-cased trimmed name. Unmapped
// names pass through trimmed with case preserved.
var skillSynonymTable = []synonymEntry{
	{"react.js", "React"},
	{"reactjs", "React"},
	{"js", "JavaScript"},
	{"ts", "TypeScript"},
	{"py", "Python"},
	{"ml", "Machine Learning"},
	{"node.js", "Node.js"},
	{"nodejs", "Node.js"},
	{"postgres", "PostgreSQL"},
	{"postgresql", "PostgreSQL"},
	{"mongo", "MongoDB"},
	{"mongodb", "MongoDB"},
	{"golang", "Go"},
	{"k8s", "Kubernetes"},
}

var skillSynonymLookup = func() map[string]string {
	m := make(map[string]string, len(skillSynonymTable))
	for _, e := range skillSynonymTable {
		m[e.alias] = e.canonical
	}
	return m
}()

func NormalizeSkillName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := skillSynonymLookup[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// skillAccumulator collects evidence tags per normalized skill while
// remembering first-appearance order, which later serves as the stable
// tie-break for strongest-skill ranking.
type skillAccumulator struct {
	order []string
	tags  map[string][]string
}

func newSkillAccumulator() *skillAccumulator {
	return &skillAccumulator{tags: map[string][]string{}}
}

func (a *skillAccumulator) add(name, tag string) {
	if name == "" {
		return
	}
	existing, known := a.tags[name]
	if !known {
		a.order = append(a.order, name)
	}
	for _, t := range existing {
		if t == tag {
			return
		}
	}
	a.tags[name] = append(existing, tag)
}

func (a *skillAccumulator) has(name string) bool {
	_, ok := a.tags[name]
	return ok
}

// Enrich implements EnrichmentService.
func (e *enrichmentService) Enrich(draft map[string]interface{}, now time.Time) *models.CandidateProfile {
	contact := draftObject(draft, "contact_info")
	profile := &models.CandidateProfile{
		ContactInfo: models.ContactInfo{
			Name:     draftString(contact, "name"),
			Email:    draftString(contact, "email"),
			Phone:    draftString(contact, "phone"),
			LinkedIn: draftString(contact, "linkedin"),
			Location: draftString(contact, "location"),
		},
		Summary: draftString(draft, "summary"),
	}

	profile.Projects = coerceProjects(draft)
	profile.Experience = coerceExperience(draft, now)
	profile.Education = coerceEducation(draft)
	profile.Certifications = coerceCertifications(draft)

	acc := newSkillAccumulator()

	for _, p := range profile.Projects {
		for _, tech := range p.Technologies {
			acc.add(NormalizeSkillName(tech), "project:"+p.Title)
		}
	}

	for _, exp := range profile.Experience {
		prefix := "work:"
		if isInternshipLike(exp.Role, exp.Company) {
			prefix = "internship:"
		}
		for _, tech := range exp.Technologies {
			acc.add(NormalizeSkillName(tech), prefix+exp.Company)
		}
	}

	flatSkills := draftStringList(draft, "skills")

	for _, cert := range profile.Certifications {
		certName := strings.ToLower(cert.Name)
		for _, kw := range certificationKeywords(acc, flatSkills) {
			if strings.Contains(certName, kw.alias) {
				acc.add(kw.canonical, "certification:"+cert.Name)
			}
		}
	}

	// Skills that appear only in the flat list carry a single marker tag.
	for _, raw := range flatSkills {
		name := NormalizeSkillName(raw)
		if !acc.has(name) {
			acc.add(name, "resume:mentioned")
		}
	}

	profile.Skills = buildSkills(acc, profile.Experience, profile.Projects)

	totalMonths := 0
	virtualCount := 0
	for _, exp := range profile.Experience {
		totalMonths += exp.DurationMonths
		if exp.Type == "internship" || exp.Type == "virtual" {
			virtualCount++
		}
	}

	profile.Aggregate = models.ProfileAggregate{
		TotalExperienceMonths: totalMonths,
		ExperienceLevel:       experienceLevel(totalMonths, virtualCount, len(profile.Experience)),
		StrongestSkills:       strongestSkills(profile.Skills),
		Volunteering:          draftStringList(draft, "volunteering"),
		Languages:             draftStringList(draft, "languages"),
	}

	return profile
}

func coerceProjects(draft map[string]interface{}) []models.Project {
	projects := []models.Project{}
	for _, obj := range draftObjectList(draft, "projects") {
		projects = append(projects, models.Project{
			Title:        draftString(obj, "title"),
			Description:  draftString(obj, "description"),
			Technologies: draftStringList(obj, "technologies"),
			Duration:     draftString(obj, "duration"),
			Achievements: draftStringList(obj, "achievements"),
			URL:          draftString(obj, "url"),
		})
	}
	return projects
}

func coerceExperience(draft map[string]interface{}, now time.Time) []models.Experience {
	experience := []models.Experience{}
	for _, obj := range draftObjectList(draft, "experience") {
		exp := models.Experience{
			Company:          draftString(obj, "company"),
			Role:             draftString(obj, "role"),
			StartDate:        draftString(obj, "start_date"),
			EndDate:          draftString(obj, "end_date"),
			Description:      draftString(obj, "description"),
			Responsibilities: draftStringList(obj, "responsibilities"),
			Technologies:     draftStringList(obj, "technologies"),
		}
		exp.Type = inferExperienceType(exp.Role, exp.Company)
		exp.DurationMonths = durationMonths(exp.StartDate, exp.EndDate, now)
		experience = append(experience, exp)
	}
	return experience
}

func coerceEducation(draft map[string]interface{}) []models.Education {
	education := []models.Education{}
	for _, obj := range draftObjectList(draft, "education") {
		education = append(education, models.Education{
			Institution: draftString(obj, "institution"),
			Degree:      draftString(obj, "degree"),
			Field:       draftString(obj, "field"),
			StartDate:   draftString(obj, "start_date"),
			EndDate:     draftString(obj, "end_date"),
			Year:        draftString(obj, "year"),
			GPA:         draftString(obj, "gpa"),
			Coursework:  draftStringList(obj, "coursework"),
		})
	}
	return education
}

func coerceCertifications(draft map[string]interface{}) []models.Certification {
	certifications := []models.Certification{}
	for _, obj := range draftObjectList(draft, "certifications") {
		certifications = append(certifications, models.Certification{
			Name:         draftString(obj, "name"),
			Issuer:       draftString(obj, "issuer"),
			Date:         draftString(obj, "date"),
			Technologies: draftStringList(obj, "technologies"),
		})
	}
	return certifications
}

// inferExperienceType classifies an entry by substring match on its role and
// company text.
func inferExperienceType(role, company string) string {
	combined := strings.ToLower(role + " " + company)
	switch {
	case strings.Contains(combined, "intern"):
		return "internship"
	case strings.Contains(combined, "virtual"):
		return "virtual"
	case strings.Contains(combined, "contract"):
		return "contract"
	case strings.Contains(combined, "freelance"):
		return "freelance"
	default:
		return "full-time"
	}
}

func isInternshipLike(role, company string) bool {
	combined := strings.ToLower(role + " " + company)
	return strings.Contains(combined, "intern") || strings.Contains(combined, "virtual")
}

// certificationKeywords yields the deterministic keyword sequence scanned
// against certification names: the synonym table first, then every skill
// discovered so far, then the flat skill list.
func certificationKeywords(acc *skillAccumulator, flatSkills []string) []synonymEntry {
	seen := map[string]bool{}
	keywords := []synonymEntry{}

	push := func(alias, canonical string) {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" || seen[alias] {
			return
		}
		seen[alias] = true
		keywords = append(keywords, synonymEntry{alias: alias, canonical: canonical})
	}

	for _, e := range skillSynonymTable {
		push(e.alias, e.canonical)
		push(e.canonical, e.canonical)
	}
	for _, name := range acc.order {
		push(name, name)
	}
	for _, raw := range flatSkills {
		name := NormalizeSkillName(raw)
		push(name, name)
	}

	return keywords
}

func buildSkills(acc *skillAccumulator, experience []models.Experience, projects []models.Project) []models.Skill {
	skills := []models.Skill{}
	for _, name := range acc.order {
		months := 0
		listedInExperience := false
		for _, exp := range experience {
			if techListContains(exp.Technologies, name) {
				listedInExperience = true
				if exp.DurationMonths > months {
					months = exp.DurationMonths
				}
			}
		}
		if !listedInExperience {
			for _, p := range projects {
				if techListContains(p.Technologies, name) {
					months = 3
					break
				}
			}
		}

		evidence := acc.tags[name]
		skills = append(skills, models.Skill{
			Name:             name,
			Evidence:         evidence,
			MonthsExperience: months,
			Proficiency:      proficiencyFor(months, len(evidence)),
		})
	}
	return skills
}

func techListContains(technologies []string, normalizedName string) bool {
	for _, tech := range technologies {
		if NormalizeSkillName(tech) == normalizedName {
			return true
		}
	}
	return false
}

func proficiencyFor(months, evidenceCount int) string {
	if months >= 12 && evidenceCount >= 3 {
		return "advanced"
	}
	if months >= 6 || evidenceCount >= 2 {
		return "intermediate"
	}
	return "beginner"
}

// experienceLevel bands the total months, demoting candidates whose history
// is mostly internships or virtual programs. Zero entries count as mostly
// virtual.
func experienceLevel(totalMonths, virtualCount, entryCount int) string {
	if totalMonths < 12 {
		return "fresher"
	}
	if totalMonths < 24 {
		mostlyVirtual := entryCount == 0 || virtualCount*2 > entryCount
		if mostlyVirtual {
			return "fresher"
		}
	}
	if totalMonths < 36 {
		return "junior"
	}
	if totalMonths < 60 {
		return "mid"
	}
	return "senior"
}

// strongestSkills picks the top 5 by evidence count, then months, keeping
// first-appearance order on ties.
func strongestSkills(skills []models.Skill) []string {
	ranked := make([]models.Skill, len(skills))
	copy(ranked, skills)

	sort.SliceStable(ranked, func(i, j int) bool {
		if len(ranked[i].Evidence) != len(ranked[j].Evidence) {
			return len(ranked[i].Evidence) > len(ranked[j].Evidence)
		}
		return ranked[i].MonthsExperience > ranked[j].MonthsExperience
	})

	limit := 5
	if len(ranked) < limit {
		limit = len(ranked)
	}

	names := []string{}
	for _, s := range ranked[:limit] {
		names = append(names, s.Name)
	}
	return names
}
