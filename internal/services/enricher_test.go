package services

import (
	"reflect"
	"testing"
	"time"
)

func sampleDraft() map[string]interface{} {
	return map[string]interface{}{
		"contact_info": map[string]interface{}{
			"name":  "Jane Doe",
			"email": "jane@example.com",
		},
		"summary": "Backend developer.",
		"skills":  []interface{}{"py", "Communication"},
		"projects": []interface{}{
			map[string]interface{}{
				"title":        "Chat App",
				"technologies": []interface{}{"reactjs", "nodejs"},
			},
		},
		"experience": []interface{}{
			map[string]interface{}{
				"company":      "Acme",
				"role":         "Software Engineer",
				"start_date":   "Jan 2020",
				"end_date":     "Jan 2021",
				"technologies": []interface{}{"py", "postgres"},
			},
		},
		"certifications": []interface{}{
			map[string]interface{}{
				"name": "Certified ml Specialist",
			},
		},
		"education": []interface{}{
			map[string]interface{}{
				"institution": "State University",
				"degree":      "Bachelor of Science",
				"field":       "Computer Science",
			},
		},
		"volunteering": []interface{}{"Code Club mentor"},
		"languages":    []interface{}{"English"},
	}
}

func TestNormalizeSkillName(t *testing.T) {
	cases := map[string]string{
		"reactjs":    "React",
		"react.js":   "React",
		"JS":         "JavaScript",
		"ts":         "TypeScript",
		"py":         "Python",
		"ml":         "Machine Learning",
		"NodeJS":     "Node.js",
		"postgres":   "PostgreSQL",
		"PostgreSQL": "PostgreSQL",
		"mongo":      "MongoDB",
		"golang":     "Go",
		"k8s":        "Kubernetes",
		"  Rust  ":   "Rust",
		"terraform":  "terraform",
	}

	for input, want := range cases {
		if got := NormalizeSkillName(input); got != want {
			t.Errorf("NormalizeSkillName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestEnrichEvidenceAggregation(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	profile := NewEnrichmentService().Enrich(sampleDraft(), now)

	want := map[string][]string{
		"React":            {"project:Chat App"},
		"Node.js":          {"project:Chat App"},
		"Python":           {"work:Acme"},
		"PostgreSQL":       {"work:Acme"},
		"Machine Learning": {"certification:Certified ml Specialist"},
		"Communication":    {"resume:mentioned"},
	}

	if len(profile.Skills) != len(want) {
		t.Fatalf("expected %d skills, got %d: %+v", len(want), len(profile.Skills), profile.Skills)
	}

	for _, skill := range profile.Skills {
		expected, ok := want[skill.Name]
		if !ok {
			t.Errorf("unexpected skill %q", skill.Name)
			continue
		}
		if !reflect.DeepEqual(skill.Evidence, expected) {
			t.Errorf("skill %q evidence = %v, want %v", skill.Name, skill.Evidence, expected)
		}
	}
}

func TestEnrichInternshipEvidenceTag(t *testing.T) {
	draft := map[string]interface{}{
		"experience": []interface{}{
			map[string]interface{}{
				"company":      "Globex",
				"role":         "Data Science Intern",
				"start_date":   "Jan 2023",
				"end_date":     "Jul 2023",
				"technologies": []interface{}{"py"},
			},
		},
	}

	profile := NewEnrichmentService().Enrich(draft, time.Now())

	if len(profile.Skills) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(profile.Skills))
	}
	if got := profile.Skills[0].Evidence[0]; got != "internship:Globex" {
		t.Errorf("evidence = %q, want internship:Globex", got)
	}
	if got := profile.Experience[0].Type; got != "internship" {
		t.Errorf("experience type = %q, want internship", got)
	}
}

func TestEnrichPerSkillMonths(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	profile := NewEnrichmentService().Enrich(sampleDraft(), now)

	months := map[string]int{}
	for _, s := range profile.Skills {
		months[s.Name] = s.MonthsExperience
	}

	// Max experience duration for skills listed under experience, 3 for
	// project-only skills, 0 otherwise.
	expected := map[string]int{
		"Python":           12,
		"PostgreSQL":       12,
		"React":            3,
		"Node.js":          3,
		"Machine Learning": 0,
		"Communication":    0,
	}

	for name, want := range expected {
		if months[name] != want {
			t.Errorf("skill %q months = %d, want %d", name, months[name], want)
		}
	}
}

func TestEnrichStrongestSkills(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	profile := NewEnrichmentService().Enrich(sampleDraft(), now)

	// All skills carry one evidence tag, so months decide; equal months keep
	// first-appearance order.
	want := []string{"Python", "PostgreSQL", "React", "Node.js", "Machine Learning"}
	if !reflect.DeepEqual(profile.Aggregate.StrongestSkills, want) {
		t.Errorf("strongest skills = %v, want %v", profile.Aggregate.StrongestSkills, want)
	}
}

func TestEnrichAggregate(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	profile := NewEnrichmentService().Enrich(sampleDraft(), now)

	if profile.Aggregate.TotalExperienceMonths != 12 {
		t.Errorf("total months = %d, want 12", profile.Aggregate.TotalExperienceMonths)
	}
	if profile.Aggregate.ExperienceLevel != "junior" {
		t.Errorf("level = %q, want junior", profile.Aggregate.ExperienceLevel)
	}
	if !reflect.DeepEqual(profile.Aggregate.Volunteering, []string{"Code Club mentor"}) {
		t.Errorf("volunteering = %v", profile.Aggregate.Volunteering)
	}
	if !reflect.DeepEqual(profile.Aggregate.Languages, []string{"English"}) {
		t.Errorf("languages = %v", profile.Aggregate.Languages)
	}
}

func TestProficiencyBands(t *testing.T) {
	cases := []struct {
		months   int
		evidence int
		want     string
	}{
		{12, 3, "advanced"},
		{24, 2, "intermediate"},
		{11, 3, "intermediate"},
		{6, 1, "intermediate"},
		{0, 2, "intermediate"},
		{5, 1, "beginner"},
		{0, 0, "beginner"},
	}

	for _, tc := range cases {
		if got := proficiencyFor(tc.months, tc.evidence); got != tc.want {
			t.Errorf("proficiencyFor(%d, %d) = %q, want %q", tc.months, tc.evidence, got, tc.want)
		}
	}
}

func TestExperienceLevelBands(t *testing.T) {
	cases := []struct {
		total   int
		virtual int
		entries int
		want    string
	}{
		{0, 0, 0, "fresher"},
		{11, 0, 1, "fresher"},
		{18, 2, 2, "fresher"}, // mostly internships
		{18, 1, 2, "junior"},  // exactly half is not "more than half"
		{12, 0, 1, "junior"},
		{35, 0, 2, "junior"},
		{36, 0, 2, "mid"},
		{59, 0, 3, "mid"},
		{60, 0, 3, "senior"},
		{120, 5, 6, "senior"},
	}

	for _, tc := range cases {
		if got := experienceLevel(tc.total, tc.virtual, tc.entries); got != tc.want {
			t.Errorf("experienceLevel(%d, %d, %d) = %q, want %q", tc.total, tc.virtual, tc.entries, got, tc.want)
		}
	}
}

func TestDurationPresentEqualsLiteralNow(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	gotPresent := durationMonths("Jun 2022", "present", now)
	gotLiteral := durationMonths("Jun 2022", "Mar 2024", now)

	if gotPresent != gotLiteral {
		t.Errorf("present duration %d != literal duration %d", gotPresent, gotLiteral)
	}
	if gotPresent != 21 {
		t.Errorf("duration = %d, want 21", gotPresent)
	}
}

func TestDurationCalculus(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		start string
		end   string
		want  int
	}{
		{"Jan 2020", "Jan 2021", 12},
		{"2020", "2021", 23},  // bare years: Jan start, Dec end
		{"Jan 2021", "Jan 2020", 0}, // negative clamps
		{"March 2020", "September 2020", 6},
		{"", "Jan 2021", 0},
		{"Jan 2020", "", 0},
		{"sometime", "Jan 2021", 0},
		{"Jan 2020", "CURRENT", 53},
		{"Jan 2020", "Now", 53},
	}

	for _, tc := range cases {
		if got := durationMonths(tc.start, tc.end, now); got != tc.want {
			t.Errorf("durationMonths(%q, %q) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestEnrichIsPureAndIdempotent(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	enricher := NewEnrichmentService()

	first := enricher.Enrich(sampleDraft(), now)
	second := enricher.Enrich(sampleDraft(), now)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("enrichment is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEnrichDefaultsOnMalformedDraft(t *testing.T) {
	draft := map[string]interface{}{
		"contact_info": "not an object",
		"summary":      42,
		"skills":       "not a list",
		"projects": []interface{}{
			"not an object",
			map[string]interface{}{"title": "Real Project", "technologies": []interface{}{"go", 7}},
		},
		"experience":     map[string]interface{}{"company": "nested wrong"},
		"education":      nil,
		"certifications": []interface{}{nil},
	}

	profile := NewEnrichmentService().Enrich(draft, time.Now())

	if profile.ContactInfo.Name != "" || profile.Summary != "" {
		t.Errorf("expected empty contact/summary, got %+v", profile.ContactInfo)
	}
	if len(profile.Projects) != 1 {
		t.Fatalf("expected the single object project to survive, got %d", len(profile.Projects))
	}
	if len(profile.Experience) != 0 || len(profile.Education) != 0 || len(profile.Certifications) != 0 {
		t.Errorf("expected empty lists for malformed fields")
	}
	if profile.Aggregate.ExperienceLevel != "fresher" {
		t.Errorf("level = %q, want fresher", profile.Aggregate.ExperienceLevel)
	}
	if len(profile.Skills) != 1 || profile.Skills[0].Name != "go" {
		t.Errorf("expected the one valid technology to survive, got %+v", profile.Skills)
	}
}

func TestEnrichEmptyDraft(t *testing.T) {
	profile := NewEnrichmentService().Enrich(map[string]interface{}{}, time.Now())

	if profile.Skills == nil || profile.Projects == nil || profile.Experience == nil ||
		profile.Education == nil || profile.Certifications == nil {
		t.Errorf("expected non-nil slices on empty draft")
	}
	if profile.Aggregate.ExperienceLevel != "fresher" {
		t.Errorf("level = %q, want fresher", profile.Aggregate.ExperienceLevel)
	}
}
