package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"hrdocs-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// SessionCleanupService periodically deletes refresh tokens that were revoked
// or expired longer ago than the retention period
type SessionCleanupService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	schedule         string
	retention        time.Duration
	cron             *cron.Cron
	now              func() time.Time
}

// NewSessionCleanupService creates a new cleanup service
func NewSessionCleanupService(refreshTokenRepo repositories.RefreshTokenRepository, schedule string, retention time.Duration) *SessionCleanupService {
	return &SessionCleanupService{
		refreshTokenRepo: refreshTokenRepo,
		schedule:         schedule,
		retention:        retention,
		cron:             cron.New(),
		now:              time.Now,
	}
}

// Start registers the cleanup job and starts the scheduler
func (s *SessionCleanupService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.Printf("🚀 Session cleanup scheduled [%s, retention %s]", s.schedule, s.retention)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *SessionCleanupService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Session cleanup stopped")
}

// RunOnce deletes stale refresh tokens and returns how many were removed
func (s *SessionCleanupService) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)

	n, err := s.refreshTokenRepo.DeleteStale(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Session cleanup failed: %v", err)
		return 0, err
	}

	if n > 0 {
		log.Printf("✅ Session cleanup removed %d refresh tokens", n)
	}
	return n, nil
}
