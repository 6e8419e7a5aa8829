package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"StockDash/internal/model"
	"StockDash/internal/recorder"
)

// QuoteSource resolves quotes; satisfied by *collector.Collector.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string, detailed bool) (*model.Quote, string, error)
}

// Scheduler manages the watchlist refresh cron task.
type Scheduler struct {
	Cron      *cron.Cron
	Quotes    QuoteSource
	Recorder  recorder.Recorder
	Watchlist []string
	Ctx       context.Context

	wg sync.WaitGroup
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, quotes QuoteSource, rec recorder.Recorder, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Quotes:    quotes,
		Recorder:  rec,
		Watchlist: watchlist,
		Ctx:       ctx,
	}
}

// RegisterAll registers the refresh task. An empty expression leaves it disabled.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if refreshCron == "" {
		log.Println("[INFO] watchlist refresh disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks, including
// those started by RunInBackground, to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (for RUN_ON_START).
// It returns the number of symbols that resolved.
func (s *Scheduler) RunNow() int {
	return s.refresh()
}

// RunInBackground starts a refresh without blocking. Stop waits for it.
func (s *Scheduler) RunInBackground() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refresh()
	}()
}

func (s *Scheduler) refreshTask() {
	s.refresh()
}

func (s *Scheduler) refresh() int {
	runID := uuid.NewString()
	log.Printf("[INFO] refreshing %d watchlist symbols (run %s)", len(s.Watchlist), runID)

	ok := 0
	for _, sym := range s.Watchlist {
		if s.Ctx.Err() != nil {
			log.Printf("[WARN] refresh %s cancelled", runID)
			break
		}
		q, source, err := s.Quotes.Quote(s.Ctx, sym, false)
		if err != nil {
			log.Printf("[ERROR] refresh %s: %v", sym, err)
			continue
		}
		ok++
		if err := s.Recorder.RecordQuote(&recorder.QuoteEvent{
			RequestID: runID,
			Symbol:    sym,
			Source:    source,
			Price:     q.Price,
			At:        time.Now(),
		}); err != nil {
			log.Printf("[ERROR] record refresh %s: %v", sym, err)
		}
	}
	log.Printf("[INFO] watchlist refresh done: %d/%d resolved", ok, len(s.Watchlist))
	return ok
}
