package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"clarityhire/internal/models"
	"clarityhire/internal/repositories"
)

// MatchService answers the two match query directions: candidates for a job
// and jobs for a candidate. Pair scores are populated lazily write-through:
// computed on first request, persisted, and never recomputed afterwards —
// a cached score is a snapshot of the profile at computation time.
type MatchService interface {
	MatchesForJob(ctx context.Context, jobID uuid.UUID) ([]models.JobMatchEntry, error)
	MatchesForResume(ctx context.Context, resumeID uuid.UUID) ([]models.ResumeMatchEntry, error)
}

type matchService struct {
	resumeRepo repositories.ResumeRepository
	jobRepo    repositories.JobRepository
	matchRepo  repositories.MatchScoreRepository
	cache      MatchCache
	cacheTTL   time.Duration
}

func NewMatchService(
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
	matchRepo repositories.MatchScoreRepository,
	cache MatchCache,
	cacheTTL time.Duration,
) MatchService {
	return &matchService{
		resumeRepo: resumeRepo,
		jobRepo:    jobRepo,
		matchRepo:  matchRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// MatchesForJob implements MatchService. Iterates every parsed resume and
// returns entries sorted by score descending, resume id ascending on ties.
func (s *matchService) MatchesForJob(ctx context.Context, jobID uuid.UUID) ([]models.JobMatchEntry, error) {
	cacheKey := fmt.Sprintf("matches:job:%s", jobID)

	var cached []models.JobMatchEntry
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		log.Printf("⚠️  Match cache read failed: %v\n", err)
	} else if hit {
		return cached, nil
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	resumes, err := s.resumeRepo.FindParsed()
	if err != nil {
		return nil, err
	}

	entries := []models.JobMatchEntry{}
	for i := range resumes {
		resume := &resumes[i]
		record, err := s.scoreForPair(job, resume)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.JobMatchEntry{
			CandidateID: record.CandidateID.String(),
			ResumeID:    resume.ID.String(),
			Score:       record.Score,
			Breakdown:   record.Breakdown,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ResumeID < entries[j].ResumeID
	})

	if err := s.cache.SetJSON(ctx, cacheKey, entries, s.cacheTTL); err != nil {
		log.Printf("⚠️  Match cache write failed: %v\n", err)
	}

	return entries, nil
}

// MatchesForResume implements MatchService. A resume that is not parsed yet
// has no profile to score, so it matches nothing.
func (s *matchService) MatchesForResume(ctx context.Context, resumeID uuid.UUID) ([]models.ResumeMatchEntry, error) {
	resume, err := s.resumeRepo.FindByID(resumeID)
	if err != nil {
		return nil, err
	}

	if resume.Status != models.StatusParsed {
		return []models.ResumeMatchEntry{}, nil
	}

	cacheKey := fmt.Sprintf("matches:resume:%s", resumeID)

	var cached []models.ResumeMatchEntry
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		log.Printf("⚠️  Match cache read failed: %v\n", err)
	} else if hit {
		return cached, nil
	}

	jobs, err := s.jobRepo.FindAll()
	if err != nil {
		return nil, err
	}

	entries := []models.ResumeMatchEntry{}
	for i := range jobs {
		job := &jobs[i]
		record, err := s.scoreForPair(job, resume)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.ResumeMatchEntry{
			JobID:     job.ID.String(),
			JobTitle:  job.Title,
			Company:   job.Company,
			Score:     record.Score,
			Breakdown: record.Breakdown,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].JobID < entries[j].JobID
	})

	if err := s.cache.SetJSON(ctx, cacheKey, entries, s.cacheTTL); err != nil {
		log.Printf("⚠️  Match cache write failed: %v\n", err)
	}

	return entries, nil
}

// scoreForPair returns the cached score for a (job, resume) pair, computing
// and persisting it on miss. The insert-or-fetch in the repository makes
// concurrent misses for the same pair converge on a single row.
func (s *matchService) scoreForPair(job *models.Job, resume *models.Resume) (*models.MatchScore, error) {
	cached, err := s.matchRepo.Find(job.ID, resume.ID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	score, breakdown := CalculateMatchScore(resume.Profile, job.Requirements)

	record := &models.MatchScore{
		ID:          uuid.New(),
		JobID:       job.ID,
		ResumeID:    resume.ID,
		CandidateID: resume.UserID,
		Score:       score,
		Breakdown:   breakdown,
		ComputedAt:  time.Now(),
	}

	return s.matchRepo.GetOrCreate(record)
}
