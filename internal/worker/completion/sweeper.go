package completion

import (
	"context"
	"time"
)

const defaultRunTimeout = 30 * time.Second

// Sweeper периодически переводит прошедшие подтверждённые бронирования в completed
type Sweeper struct {
	repo         ReservationRepository
	metrics      MetricsRecorder
	interval     time.Duration
	runTimeout   time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewSweeper создает sweeper с указанным интервалом запуска
func NewSweeper(repo ReservationRepository, metrics MetricsRecorder, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		repo:         repo,
		metrics:      metrics,
		interval:     interval,
		runTimeout:   defaultRunTimeout,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// Run выполняет sweep сразу и далее по тикеру, пока не отменён ctx
// Интервал <= 0 отключает периодический sweep
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Sweeper: periodic completion disabled")
		return
	}

	s.logger.Info("Sweeper: started with interval=%s", s.interval)
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce завершает все истёкшие бронирования и возвращает их количество
func (s *Sweeper) RunOnce(ctx context.Context) int64 {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	count, err := s.repo.CompleteExpired(runCtx, s.timeProvider.Now(), nil)
	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		s.logger.Error("Sweeper: failed to complete expired reservations: %v", err)
		return 0
	}

	if count > 0 {
		s.metrics.AddReservationsCompleted(count)
		s.logger.Info("Sweeper: completed %d expired reservations", count)
	}
	return count
}
