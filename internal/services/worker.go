package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"clarityhire/internal/config"
	"clarityhire/internal/repositories"
)

// ParseTask is one unit of pipeline work. Delivery is at-least-once: the
// in-process queue plus the pending poller may hand the same record to a
// worker twice, and the parser's guarded transition absorbs the duplicate.
type ParseTask struct {
	ResumeID uuid.UUID
	FilePath string
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(task ParseTask) error
}

type worker struct {
	resumeRepo   repositories.ResumeRepository
	parser       ResumeParserService
	taskQueue    chan ParseTask
	concurrency  int
	pollInterval time.Duration
	pendingGrace time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewWorker(
	resumeRepo repositories.ResumeRepository,
	parser ResumeParserService,
	cfg config.WorkerConfig,
) Worker {
	return &worker{
		resumeRepo:   resumeRepo,
		parser:       parser,
		taskQueue:    make(chan ParseTask, cfg.QueueSize),
		concurrency:  cfg.Concurrency,
		pollInterval: cfg.PollInterval,
		pendingGrace: cfg.PendingGrace,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processTasks(ctx, i+1)
	}

	// The poller re-enqueues pending records whose dispatch was lost, so a
	// failed enqueue never strands a record.
	w.wg.Add(1)
	go w.pollStalePending(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// Enqueue implements Worker. It never blocks: a full queue or a stopped
// worker is reported to the caller, and the pending poller takes over.
func (w *worker) Enqueue(task ParseTask) error {
	select {
	case <-w.stopChan:
		return fmt.Errorf("worker stopped, cannot enqueue resume %s", task.ResumeID)
	default:
	}

	select {
	case w.taskQueue <- task:
		log.Printf("📥 Task for resume %s enqueued\n", task.ResumeID)
		return nil
	default:
		return fmt.Errorf("task queue full, resume %s left for poller", task.ResumeID)
	}
}

func (w *worker) processTasks(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("👷 Worker #%d started\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case task := <-w.taskQueue:
			if err := w.parser.ParseResume(ctx, task.ResumeID, task.FilePath); err != nil {
				// Only persistence failures reach here; stage failures are
				// already recorded on the record itself.
				log.Printf("❌ Worker #%d task for resume %s failed: %v\n", workerID, task.ResumeID, err)
			} else {
				log.Printf("👷 Worker #%d finished task for resume %s\n", workerID, task.ResumeID)
			}
		}
	}
}

func (w *worker) pollStalePending(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting pending resume poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending resume poller stopped")
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-w.pendingGrace)
			stale, err := w.resumeRepo.FindStalePending(cutoff, 10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch stale pending resumes: %v\n", err)
				continue
			}

			if len(stale) > 0 {
				log.Printf("📋 Re-enqueueing %d stale pending resumes\n", len(stale))
			}

			for _, resume := range stale {
				if err := w.Enqueue(ParseTask{ResumeID: resume.ID, FilePath: resume.FilePath}); err != nil {
					log.Printf("⚠️  Failed to re-enqueue resume %s: %v\n", resume.ID, err)
				}
			}
		}
	}
}
