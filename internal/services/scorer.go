package services

import (
	"math"
	"sort"
	"strings"

	"clarityhire/internal/models"
)

// Weights: skills 50, experience 30, education 20.
const (
	skillsWeight     = 50
	experienceWeight = 30
	educationWeight  = 20
)

// CalculateMatchScore compares a candidate profile against structured job
// requirements and returns a 0-100 score with its breakdown. The function is
// pure and deterministic, which is what makes caching the result safe.
func CalculateMatchScore(profile *models.CandidateProfile, requirements *models.JobRequirements) (int, *models.ScoreBreakdown) {
	if profile == nil {
		profile = &models.CandidateProfile{}
	}
	if requirements == nil {
		requirements = &models.JobRequirements{}
	}

	breakdown := &models.ScoreBreakdown{
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}

	// Skills (0-50): case-insensitive intersection ratio.
	requiredSet := lowerSet(requirements.RequiredSkills)
	candidateSet := candidateSkillSet(profile)

	if len(requiredSet) > 0 {
		matched := []string{}
		missing := []string{}
		for skill := range requiredSet {
			if candidateSet[skill] {
				matched = append(matched, skill)
			} else {
				missing = append(missing, skill)
			}
		}
		sort.Strings(matched)
		sort.Strings(missing)
		breakdown.MatchedSkills = matched
		breakdown.MissingSkills = missing

		ratio := float64(len(matched)) / float64(len(requiredSet))
		breakdown.SkillsScore = int(math.Round(ratio * skillsWeight))
	} else {
		breakdown.SkillsScore = skillsWeight
	}

	// Experience (0-30): full credit at or above the requirement, else
	// proportional. An unspecified requirement grants full credit.
	candidateYears := float64(profile.Aggregate.TotalExperienceMonths) / 12.0
	requiredYears := requirements.ExperienceYears

	if requiredYears > 0 {
		if candidateYears >= requiredYears {
			breakdown.ExperienceScore = experienceWeight
		} else {
			breakdown.ExperienceScore = int(math.Round(candidateYears / requiredYears * experienceWeight))
		}
	} else {
		breakdown.ExperienceScore = experienceWeight
	}

	// Education (0-20): rank comparison over a coarse hierarchy; a candidate
	// below the required rank still gets flat partial credit for holding any
	// credential.
	requiredRank := educationRank(normalizeEducation(requirements.EducationLevel))
	candidateRank := highestEducationRank(profile)

	if requiredRank == 0 || candidateRank >= requiredRank {
		breakdown.EducationScore = educationWeight
	} else {
		breakdown.EducationScore = educationWeight / 2
	}

	total := breakdown.SkillsScore + breakdown.ExperienceScore + breakdown.EducationScore
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return total, breakdown
}

func lowerSet(values []string) map[string]bool {
	set := map[string]bool{}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func candidateSkillSet(profile *models.CandidateProfile) map[string]bool {
	set := map[string]bool{}
	if profile == nil {
		return set
	}
	for _, skill := range profile.Skills {
		name := strings.ToLower(strings.TrimSpace(skill.Name))
		if name != "" {
			set[name] = true
		}
	}
	return set
}

// normalizeEducation maps free-text degree descriptions onto the coarse
// {phd, masters, bachelors} hierarchy; anything else is unranked.
func normalizeEducation(text string) string {
	text = strings.ToLower(text)
	switch {
	case strings.Contains(text, "phd") || strings.Contains(text, "doctor"):
		return "phd"
	case strings.Contains(text, "master"):
		return "masters"
	case strings.Contains(text, "bachelor") || strings.Contains(text, "degree"):
		return "bachelors"
	default:
		return ""
	}
}

func educationRank(level string) int {
	switch level {
	case "phd":
		return 4
	case "masters":
		return 3
	case "bachelors":
		return 2
	default:
		return 0
	}
}

func highestEducationRank(profile *models.CandidateProfile) int {
	if profile == nil {
		return 0
	}
	highest := 0
	for _, edu := range profile.Education {
		rank := educationRank(normalizeEducation(edu.Degree + " " + edu.Field))
		if rank > highest {
			highest = rank
		}
	}
	return highest
}
