package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"clarityhire/internal/models"
	"clarityhire/internal/repositories"
)

// ResumeParserService runs the parse pipeline for one record: guarded
// status transition, text extraction, structured extraction, enrichment,
// persistence. Stage failures are recorded on the record and drive the
// FAILED transition; only a failing status write escapes to the caller.
type ResumeParserService interface {
	ParseResume(ctx context.Context, resumeID uuid.UUID, filePath string) error
}

type resumeParserService struct {
	resumeRepo repositories.ResumeRepository
	pdfParser  PDFParserService
	gemini     GeminiService
	enricher   EnrichmentService
}

func NewResumeParserService(
	resumeRepo repositories.ResumeRepository,
	pdfParser PDFParserService,
	gemini GeminiService,
	enricher EnrichmentService,
) ResumeParserService {
	return &resumeParserService{
		resumeRepo: resumeRepo,
		pdfParser:  pdfParser,
		gemini:     gemini,
		enricher:   enricher,
	}
}

// ParseResume implements ResumeParserService. The five steps are strictly
// sequential; queue delivery is at-least-once, so the first transition is
// guarded by the expected current status and a duplicate delivery becomes a
// no-op.
func (s *resumeParserService) ParseResume(ctx context.Context, resumeID uuid.UUID, filePath string) error {
	transitioned, err := s.resumeRepo.TransitionStatus(resumeID, models.StatusPending, models.StatusParsing)
	if err != nil {
		return fmt.Errorf("%w: transition to parsing for resume %s: %v", ErrPersistence, resumeID, err)
	}
	if !transitioned {
		log.Printf("⏭️  Resume %s not pending, skipping duplicate delivery\n", resumeID)
		return nil
	}

	log.Printf("🔄 Parsing resume %s\n", resumeID)

	text, err := s.pdfParser.ExtractText(filePath)
	if err != nil {
		return s.recordFailure(resumeID, fmt.Errorf("%w: %v", ErrExtraction, err))
	}

	draft, err := s.gemini.ExtractResumeDraft(ctx, CleanText(text))
	if err != nil {
		return s.recordFailure(resumeID, fmt.Errorf("%w: %v", ErrService, err))
	}

	profile := s.enricher.Enrich(draft, time.Now())

	if err := s.resumeRepo.MarkParsed(resumeID, profile); err != nil {
		// The record is stuck in parsing; log the id for reconciliation.
		log.Printf("❌ Failed to persist parsed profile for resume %s: %v\n", resumeID, err)
		return fmt.Errorf("%w: persist profile for resume %s: %v", ErrPersistence, resumeID, err)
	}

	log.Printf("✅ Resume %s parsed\n", resumeID)
	return nil
}

// recordFailure writes the bounded error message and the FAILED transition.
// If that secondary write itself fails, the task is surfaced as failed to
// the queue layer instead of being swallowed.
func (s *resumeParserService) recordFailure(resumeID uuid.UUID, stageErr error) error {
	msg := boundErrorMessage(stageErr.Error())
	if err := s.resumeRepo.MarkFailed(resumeID, msg); err != nil {
		return fmt.Errorf("%w: recording failure for resume %s: %v (stage error: %s)", ErrPersistence, resumeID, err, msg)
	}

	log.Printf("❌ Resume %s failed: %s\n", resumeID, msg)
	return nil
}
