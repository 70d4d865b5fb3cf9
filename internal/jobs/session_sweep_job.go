package jobs

import (
	"context"
	"fmt"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// DefaultSweepSchedule runs the sweep every ten minutes.
	DefaultSweepSchedule = "@every 10m"

	sweepTimeout = time.Minute
)

// SweepHandler releases stuck submissions and deletes sessions idle for
// longer than the command's TTL.
type SweepHandler interface {
	Handle(ctx context.Context, command commands.SweepStaleSessionsCommand) (commands.SweepStaleSessionsResult, error)
}

// SessionSweepJob periodically removes abandoned checkout sessions and
// releases submissions left in flight past the submit lease. Runs
// never overlap; a tick that finds the previous run still going is skipped.
type SessionSweepJob struct {
	handler  SweepHandler
	command  commands.SweepStaleSessionsCommand
	schedule string
	metrics  *metrics.Metrics
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewSessionSweepJob creates the job. An empty schedule means DefaultSweepSchedule.
func NewSessionSweepJob(
	handler SweepHandler,
	ttl time.Duration,
	submitLease time.Duration,
	schedule string,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*SessionSweepJob, error) {
	command, err := commands.NewSweepStaleSessionsCommand(ttl, submitLease)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "session_sweep_job"))

	return &SessionSweepJob{
		handler:  handler,
		command:  command,
		schedule: schedule,
		metrics:  m,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
			cron.SkipIfStillRunning(cronLogger{logger}),
		)),
		logger: logger,
	}, nil
}

// Start schedules the sweep.
func (j *SessionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("session sweep job started",
		zap.String("schedule", j.schedule),
		zap.Duration("ttl", j.command.TTL()),
		zap.Duration("submit_lease", j.command.SubmitLease()),
	)
	return nil
}

// RunOnce performs a single sweep and reports what it changed.
func (j *SessionSweepJob) RunOnce(ctx context.Context) (commands.SweepStaleSessionsResult, error) {
	res, err := j.handler.Handle(ctx, j.command)
	if err != nil {
		j.logger.Error("session sweep failed", zap.Error(err))
		return commands.SweepStaleSessionsResult{}, err
	}

	j.metrics.SessionsSwept(res.Removed)
	j.metrics.SubmissionsReleased(res.Released)
	if res.Released > 0 {
		j.logger.Warn("stuck submissions released", zap.Int64("count", res.Released))
	}
	if res.Removed > 0 {
		j.logger.Info("stale sessions removed", zap.Int64("count", res.Removed))
	}
	return res, nil
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *SessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("session sweep job stopped")
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Sugar().Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
