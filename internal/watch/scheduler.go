package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
)

// scheduler wraps a gocron scheduler holding the periodic export job.
type scheduler struct {
	s gocron.Scheduler
}

func newScheduler(_ context.Context, interval time.Duration, task func()) (*scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create gocron scheduler").Build()
	}
	job, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName("periodic-export"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to create periodic export job").
			WithContext("interval", interval.String()).Build()
	}
	slog.Info("Scheduled periodic export", slog.String("job_id", job.ID().String()), slog.Duration("interval", interval))
	s.Start()
	return &scheduler{s: s}, nil
}

func (s *scheduler) stop() {
	if err := s.s.Shutdown(); err != nil {
		slog.Error("Failed to stop scheduler", logfields.Error(err))
	}
}
