package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/omarshaarawi/gmsim/internal/config"
	"github.com/omarshaarawi/gmsim/internal/service"
)

const (
	auditTimeout  = 5 * time.Minute
	purgeInterval = time.Hour
)

type Scheduler struct {
	s           gocron.Scheduler
	gm          *service.GMService
	cfg         config.Audit
	purge       func() int
	sendMessage func(string) error
}

// NewScheduler builds the audit and cache jobs. purge and sendMessage may
// be nil.
func NewScheduler(gm *service.GMService, cfg config.Audit, purge func() int, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Location)
	if err != nil {
		slog.Error("Failed to load location, using UTC", "location", cfg.Location, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		gm:          gm,
		cfg:         cfg,
		purge:       purge,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	if s.cfg.Enabled {
		// Engine audit - daily, 06:00 CDT by default
		_, err := s.s.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(s.cfg.Hour, s.cfg.Minute, 0))),
			gocron.NewTask(s.runAudit),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create audit job: %w", err)
		}
	}

	if s.purge != nil {
		_, err := s.s.NewJob(
			gocron.DurationJob(purgeInterval),
			gocron.NewTask(s.purgeCache),
		)
		if err != nil {
			return fmt.Errorf("failed to create cache purge job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) runAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	report := s.gm.Audit(ctx)
	if s.sendMessage == nil {
		return
	}
	if err := s.sendMessage(report.String()); err != nil {
		slog.Error("Failed to send audit report", "error", err)
	}
}

func (s *Scheduler) purgeCache() {
	if n := s.purge(); n > 0 {
		slog.Info("Purged cached league teams", "snapshots", n)
	}
}
