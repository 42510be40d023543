package systemcontroller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/saludmexfood/saluds-mx-food/cache"
	"github.com/saludmexfood/saluds-mx-food/models"
	"gorm.io/gorm"
)

// Sweeper periodically cancels stale unpaid orders so abandoned checkouts do
// not pile up in the PENDING queue. The settings screen drives it: pause and
// resume gate the loop, run_now forces an immediate pass, stop halts it.
type Sweeper struct {
	DB       *gorm.DB
	Pause    *cache.PauseState
	Interval time.Duration
	MaxAge   time.Duration

	runNow   chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSweeper(db *gorm.DB, pause *cache.PauseState, interval, maxAge time.Duration) *Sweeper {
	return &Sweeper{
		DB:       db,
		Pause:    pause,
		Interval: interval,
		MaxAge:   maxAge,
		runNow:   make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called.
func (s *Sweeper) Start() {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			log.Println("🛑 Order sweeper stopped")
			return
		case <-s.runNow:
			s.sweep()
		case <-ticker.C:
			if s.Pause.Paused(context.Background()) {
				continue
			}
			s.sweep()
		}
	}
}

// RunNow kicks an immediate sweep; a no-op if one is already queued.
func (s *Sweeper) RunNow() {
	select {
	case s.runNow <- struct{}{}:
	default:
	}
}

// Stop halts the loop. Safe to call from concurrent requests.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// SweepOnce cancels PENDING orders older than MaxAge and returns how many
// were cancelled.
func (s *Sweeper) SweepOnce() (int64, error) {
	cutoff := time.Now().Add(-s.MaxAge)
	result := s.DB.Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.OrderStatusPending, cutoff).
		Update("status", models.OrderStatusCancelled)
	return result.RowsAffected, result.Error
}

func (s *Sweeper) sweep() {
	n, err := s.SweepOnce()
	if err != nil {
		log.Printf("❌ Order sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("🗑️ Cancelled %d stale pending orders", n)
	}
}
