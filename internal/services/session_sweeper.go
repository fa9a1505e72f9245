package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// SessionSweeper periodically evicts live sessions nobody has touched
// for longer than the idle TTL.
type SessionSweeper interface {
	Start(ctx context.Context)
	Stop()
	Sweep() int
}

type sessionSweeper struct {
	store    SessionStore
	idleTTL  time.Duration
	interval time.Duration
	now      func() time.Time
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewSessionSweeper(store SessionStore, idleTTL, interval time.Duration) SessionSweeper {
	return &sessionSweeper{
		store:    store,
		idleTTL:  idleTTL,
		interval: interval,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Start implements SessionSweeper.
func (s *sessionSweeper) Start(ctx context.Context) {
	if s.idleTTL <= 0 || s.interval <= 0 {
		log.Println("⚠️ Session sweeper disabled")
		return
	}

	s.wg.Add(1)
	go s.run(ctx)

	log.Printf("🧹 Session sweeper started (idle ttl %s, every %s)\n", s.idleTTL, s.interval)
}

// Stop implements SessionSweeper.
func (s *sessionSweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	log.Println("✅ Session sweeper stopped")
}

// Sweep implements SessionSweeper.
func (s *sessionSweeper) Sweep() int {
	evicted := s.store.EvictIdle(s.now().Add(-s.idleTTL))
	if evicted > 0 {
		log.Printf("🧹 Evicted %d idle sessions\n", evicted)
	}
	return evicted
}

func (s *sessionSweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
