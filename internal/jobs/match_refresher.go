package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Hsrehman/SafeHaven-sub000/internal/service"
)

// MatchRefresher periodically re-scores open applications so stored match
// percentages track profile edits made after the application was submitted.
type MatchRefresher struct {
	applicationService *service.ApplicationService
	interval           time.Duration
	stopCh             chan struct{}
	wg                 sync.WaitGroup
	running            bool
	mu                 sync.Mutex
}

// NewMatchRefresher creates a new match refresher job
func NewMatchRefresher(applicationService *service.ApplicationService, interval time.Duration) *MatchRefresher {
	if interval == 0 {
		interval = 1 * time.Hour
	}
	return &MatchRefresher{
		applicationService: applicationService,
		interval:           interval,
		stopCh:             make(chan struct{}),
	}
}

// Start begins the match refresher job
func (m *MatchRefresher) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run()
	log.Printf("Match refresher started (interval: %v)", m.interval)
}

// Stop gracefully stops the match refresher job
func (m *MatchRefresher) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	close(m.stopCh)
	m.wg.Wait()
	log.Println("Match refresher stopped")
}

func (m *MatchRefresher) run() {
	defer m.wg.Done()

	// Run immediately on start
	m.refresh()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *MatchRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, err := m.applicationService.RefreshMatchScores(ctx)
	if err != nil {
		log.Printf("Error refreshing match scores: %v", err)
		return
	}
	if updated > 0 {
		log.Printf("Refreshed match scores on %d applications", updated)
	}
}

// RunOnce runs the refresh once (for testing or manual trigger)
func (m *MatchRefresher) RunOnce(ctx context.Context) error {
	_, err := m.applicationService.RefreshMatchScores(ctx)
	return err
}

// IsRunning returns whether the refresher is running
func (m *MatchRefresher) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
