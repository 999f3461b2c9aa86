package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Hsrehman/SafeHaven-sub000/internal/service"
)

// TokenCleanup removes expired refresh tokens and prunes revoked ones on a
// schedule.
type TokenCleanup struct {
	tokenService *service.TokenService
	interval     time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
	running      bool
	mu           sync.Mutex
}

// NewTokenCleanup creates a new token cleanup job
func NewTokenCleanup(tokenService *service.TokenService, interval time.Duration) *TokenCleanup {
	if interval == 0 {
		interval = 24 * time.Hour
	}
	return &TokenCleanup{
		tokenService: tokenService,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the token cleanup job
func (c *TokenCleanup) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run()
	log.Printf("Token cleanup started (interval: %v)", c.interval)
}

// Stop gracefully stops the token cleanup job
func (c *TokenCleanup) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.mu.Unlock()

	close(c.stopCh)
	c.wg.Wait()
	log.Println("Token cleanup stopped")
}

func (c *TokenCleanup) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

func (c *TokenCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if err := c.tokenService.CleanupExpired(ctx); err != nil {
		log.Printf("Error cleaning up tokens: %v", err)
	}
}

// RunOnce runs the cleanup once (for testing or manual trigger)
func (c *TokenCleanup) RunOnce(ctx context.Context) error {
	return c.tokenService.CleanupExpired(ctx)
}

// IsRunning returns whether the cleanup job is running
func (c *TokenCleanup) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
