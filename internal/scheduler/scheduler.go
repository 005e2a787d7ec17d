// Package scheduler re-runs the prediction pipeline for configured
// exchange/symbol pairs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"stockcast/internal/calendar"
	"stockcast/internal/config"
	"stockcast/internal/pipeline"
	"stockcast/pkg/model"
)

const (
	defaultLookbackDays = 365
	defaultHorizonDays  = 30
)

// Runner executes one prediction run
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*model.Report, error)
}

// Scheduler manages the watch cron task
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	jobs   []config.WatchJob
	ctx    context.Context
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler creates a new Scheduler
// A tick that fires while the previous one is still running is skipped.
func NewScheduler(ctx context.Context, runner Runner, jobs []config.WatchJob, logger *zap.Logger) *Scheduler {
	logger = logger.With(zap.String("component", "scheduler"))
	cl := cronLogger{logger.Sugar()}

	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.SkipIfStillRunning(cl)),
		),
		runner: runner,
		jobs:   jobs,
		ctx:    ctx,
		logger: logger,
		now:    time.Now,
	}
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Register adds the watch task on a cron schedule (six fields, seconds first)
func (s *Scheduler) Register(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.RunNow); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop stops the scheduler and waits for a running tick to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunNow evaluates every job once, one after another
func (s *Scheduler) RunNow() {
	s.logger.Info("running watch task")
	for _, job := range s.jobs {
		if s.ctx.Err() != nil {
			return
		}
		s.runJob(job)
	}
}

// request builds the pipeline input for a job relative to today
func (s *Scheduler) request(job config.WatchJob) pipeline.Request {
	lookback := job.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}
	horizon := job.HorizonDays
	if horizon <= 0 {
		horizon = defaultHorizonDays
	}

	today := calendar.Day(s.now())
	return pipeline.Request{
		Exchange: job.Exchange,
		Symbol:   job.Symbol,
		Start:    today.AddDate(0, 0, -lookback),
		End:      today.AddDate(0, 0, horizon),
	}
}

func (s *Scheduler) runJob(job config.WatchJob) {
	logger := s.logger.With(zap.String("exchange", job.Exchange), zap.String("symbol", job.Symbol))

	report, err := s.runner.Run(s.ctx, s.request(job))
	if err != nil {
		logger.Error("watch run failed", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("report_id", report.ID),
		zap.Int("bars", report.Bars),
		zap.Int("forecast_days", len(report.Forecast)),
	}
	if rec := report.Recommendation; rec != nil {
		fields = append(fields,
			zap.String("signal", string(rec.Signal)),
			zap.String("recent_avg", rec.RecentAvgDisplay),
			zap.String("predicted_avg", rec.PredictedAvgDisplay),
		)
	}
	for _, w := range report.Warnings {
		logger.Warn(w, zap.String("report_id", report.ID))
	}
	logger.Info("watch run complete", fields...)
}
