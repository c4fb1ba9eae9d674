package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"clarityhire/internal/models"
)

type fakeJobRepo struct {
	mu          sync.Mutex
	jobs        map[uuid.UUID]*models.Job
	findByIDCnt int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[uuid.UUID]*models.Job{}}
}

func (f *fakeJobRepo) Create(job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByIDCnt++
	job, ok := f.jobs[id]
	if !ok {
		return nil, errors.New("job not found")
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) FindAll() ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Job
	for _, j := range f.jobs {
		out = append(out, *j)
	}
	return out, nil
}

type scorePair struct {
	jobID    uuid.UUID
	resumeID uuid.UUID
}

type fakeMatchRepo struct {
	mu     sync.Mutex
	scores map[scorePair]*models.MatchScore
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{scores: map[scorePair]*models.MatchScore{}}
}

func (f *fakeMatchRepo) Find(jobID, resumeID uuid.UUID) (*models.MatchScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	score, ok := f.scores[scorePair{jobID, resumeID}]
	if !ok {
		return nil, nil
	}
	copied := *score
	return &copied, nil
}

func (f *fakeMatchRepo) GetOrCreate(score *models.MatchScore) (*models.MatchScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := scorePair{score.JobID, score.ResumeID}
	if existing, ok := f.scores[key]; ok {
		copied := *existing
		return &copied, nil
	}
	copied := *score
	f.scores[key] = &copied
	return score, nil
}

type memMatchCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func newMemMatchCache() *memMatchCache {
	return &memMatchCache{data: map[string][]byte{}}
}

func (c *memMatchCache) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memMatchCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func parsedResume(repo *fakeResumeRepo, profile *models.CandidateProfile) *models.Resume {
	resume := &models.Resume{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		OriginalFilename: "cv.pdf",
		FilePath:         "/uploads/cv.pdf",
		Status:           models.StatusParsed,
		Profile:          profile,
		CreatedAt:        time.Now(),
	}
	repo.add(resume)
	return resume
}

func storedJob(repo *fakeJobRepo, title string, requirements *models.JobRequirements) *models.Job {
	job := &models.Job{
		ID:           uuid.New(),
		Title:        title,
		Company:      "Initech",
		Requirements: requirements,
		CreatedAt:    time.Now(),
	}
	repo.Create(job)
	return job
}

func newTestMatchService(resumeRepo *fakeResumeRepo, jobRepo *fakeJobRepo, matchRepo *fakeMatchRepo, cache MatchCache) MatchService {
	return NewMatchService(resumeRepo, jobRepo, matchRepo, cache, time.Minute)
}

func TestMatchesForJobComputesAndPersists(t *testing.T) {
	resumeRepo := newFakeResumeRepo()
	jobRepo := newFakeJobRepo()
	matchRepo := newFakeMatchRepo()

	strong := parsedResume(resumeRepo, profileWith([]string{"Python", "SQL"}, 72, "Master of Science"))
	weak := parsedResume(resumeRepo, profileWith([]string{"Python"}, 12, ""))
	job := storedJob(jobRepo, "Backend Engineer", &models.JobRequirements{
		RequiredSkills:  []string{"python", "sql"},
		ExperienceYears: 5,
		EducationLevel:  "Bachelor",
	})

	svc := newTestMatchService(resumeRepo, jobRepo, matchRepo, noopMatchCache{})

	entries, err := svc.MatchesForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("MatchesForJob returned error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ResumeID != strong.ID.String() || entries[1].ResumeID != weak.ID.String() {
		t.Errorf("entries not sorted by score: %+v", entries)
	}
	if entries[0].Score <= entries[1].Score {
		t.Errorf("scores not descending: %d then %d", entries[0].Score, entries[1].Score)
	}
	if entries[0].Breakdown == nil {
		t.Error("expected a breakdown on each entry")
	}

	for _, resumeID := range []uuid.UUID{strong.ID, weak.ID} {
		record, err := matchRepo.Find(job.ID, resumeID)
		if err != nil || record == nil {
			t.Errorf("expected a persisted score for resume %s", resumeID)
		}
	}
}

func TestMatchScoreIsSnapshot(t *testing.T) {
	resumeRepo := newFakeResumeRepo()
	jobRepo := newFakeJobRepo()
	matchRepo := newFakeMatchRepo()

	resume := parsedResume(resumeRepo, profileWith([]string{"Python"}, 0, ""))
	job := storedJob(jobRepo, "Backend Engineer", &models.JobRequirements{
		RequiredSkills: []string{"python", "sql"},
	})

	svc := newTestMatchService(resumeRepo, jobRepo, matchRepo, noopMatchCache{})

	first, err := svc.MatchesForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("MatchesForJob returned error: %v", err)
	}

	// A re-parse that improves the profile must not disturb an already
	// computed pair score.
	resume.Profile = profileWith([]string{"Python", "SQL"}, 0, "")

	second, err := svc.MatchesForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("MatchesForJob returned error: %v", err)
	}

	if first[0].Score != second[0].Score {
		t.Errorf("score changed %d -> %d after profile mutation, want snapshot", first[0].Score, second[0].Score)
	}
}

func TestMatchesForJobTieBreak(t *testing.T) {
	resumeRepo := newFakeResumeRepo()
	jobRepo := newFakeJobRepo()
	matchRepo := newFakeMatchRepo()

	a := parsedResume(resumeRepo, profileWith([]string{"Python"}, 24, ""))
	b := parsedResume(resumeRepo, profileWith([]string{"Python"}, 24, ""))
	job := storedJob(jobRepo, "Backend Engineer", &models.JobRequirements{
		RequiredSkills: []string{"python"},
	})

	svc := newTestMatchService(resumeRepo, jobRepo, matchRepo, noopMatchCache{})

	entries, err := svc.MatchesForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("MatchesForJob returned error: %v", err)
	}

	if len(entries) != 2 || entries[0].Score != entries[1].Score {
		t.Fatalf("expected 2 equal scores, got %+v", entries)
	}

	lo, hi := a.ID.String(), b.ID.String()
	if lo > hi {
		lo, hi = hi, lo
	}
	if entries[0].ResumeID != lo || entries[1].ResumeID != hi {
		t.Errorf("ties not broken by resume id ascending: %s then %s", entries[0].ResumeID, entries[1].ResumeID)
	}
}

func TestMatchesForResumeNotParsed(t *testing.T) {
	resumeRepo := newFakeResumeRepo()
	jobRepo := newFakeJobRepo()
	matchRepo := newFakeMatchRepo()

	resume := pendingResume(resumeRepo)
	storedJob(jobRepo, "Backend Engineer", &models.JobRequirements{RequiredSkills: []string{"python"}})

	svc := newTestMatchService(resumeRepo, jobRepo, matchRepo, noopMatchCache{})

	entries, err := svc.MatchesForResume(context.Background(), resume.ID)
	if err != nil {
		t.Fatalf("MatchesForResume returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("unparsed resume matched %d jobs, want 0", len(entries))
	}
}

func TestMatchesForResumeOrdering(t *testing.T) {
	resumeRepo := newFakeResumeRepo()
	jobRepo := newFakeJobRepo()
	matchRepo := newFakeMatchRepo()

	resume := parsedResume(resumeRepo, profileWith([]string{"Python", "SQL"}, 72, "Master of Science"))
	fit := storedJob(jobRepo, "Backend Engineer", &models.JobRequirements{
		RequiredSkills:  []string{"python", "sql"},
		ExperienceYears: 3,
	})
	stretch := storedJob(jobRepo, "Frontend Engineer", &models.JobRequirements{
		RequiredSkills:  []string{"react", "typescript"},
		ExperienceYears: 3,
	})

	svc := newTestMatchService(resumeRepo, jobRepo, matchRepo, noopMatchCache{})

	entries, err := svc.MatchesForResume(context.Background(), resume.ID)
	if err != nil {
		t.Fatalf("MatchesForResume returned error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].JobID != fit.ID.String() || entries[1].JobID != stretch.ID.String() {
		t.Errorf("entries not sorted by score: %+v", entries)
	}
	if entries[0].JobTitle != "Backend Engineer" {
		t.Errorf("job title = %q, want Backend Engineer", entries[0].JobTitle)
	}
}

func TestMatchesForJobResponseCacheHit(t *testing.T) {
	resumeRepo := newFakeResumeRepo()
	jobRepo := newFakeJobRepo()
	matchRepo := newFakeMatchRepo()
	cache := newMemMatchCache()

	parsedResume(resumeRepo, profileWith([]string{"Python"}, 12, ""))
	job := storedJob(jobRepo, "Backend Engineer", &models.JobRequirements{
		RequiredSkills: []string{"python"},
	})

	svc := newTestMatchService(resumeRepo, jobRepo, matchRepo, cache)

	first, err := svc.MatchesForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("MatchesForJob returned error: %v", err)
	}
	lookupsAfterFirst := jobRepo.findByIDCnt

	second, err := svc.MatchesForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("MatchesForJob returned error: %v", err)
	}

	if jobRepo.findByIDCnt != lookupsAfterFirst {
		t.Errorf("cached request still hit the job repository")
	}
	if len(first) != len(second) || first[0].Score != second[0].Score {
		t.Errorf("cached response differs: %+v vs %+v", first, second)
	}
}

func TestMatchesForJobCacheErrorIsNonFatal(t *testing.T) {
	resumeRepo := newFakeResumeRepo()
	jobRepo := newFakeJobRepo()
	matchRepo := newFakeMatchRepo()
	cache := newMemMatchCache()
	cache.getErr = errors.New("redis unreachable")

	parsedResume(resumeRepo, profileWith([]string{"Python"}, 12, ""))
	job := storedJob(jobRepo, "Backend Engineer", &models.JobRequirements{
		RequiredSkills: []string{"python"},
	})

	svc := newTestMatchService(resumeRepo, jobRepo, matchRepo, cache)

	entries, err := svc.MatchesForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("cache failure must degrade to recompute, got: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}
