package scheduler

import (
	"context"
	"fmt"
	"leave-calendar/internal/models"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// MergeRunner проход объединения, который запускает планировщик
type MergeRunner interface {
	ExecuteMergeJob(ctx context.Context) (*models.MergeSummary, error)
}

// Scheduler запускает проход объединения по cron-расписанию.
// Если предыдущий запуск еще идет, очередной пропускается.
type Scheduler struct {
	cron    *cron.Cron
	job     MergeRunner
	spec    string
	entryID cron.EntryID
	logger  *logrus.Logger
}

func New(job MergeRunner, spec string, location *time.Location, logger *logrus.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if location == nil {
		location = time.Local
	}

	cronLogger := cron.PrintfLogger(logger)
	c := cron.New(
		cron.WithLocation(location),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	s := &Scheduler{
		cron:   c,
		job:    job,
		spec:   spec,
		logger: logger,
	}

	id, err := c.AddFunc(spec, s.run)
	if err != nil {
		return nil, fmt.Errorf("invalid merge schedule %q: %w", spec, err)
	}
	s.entryID = id

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.WithFields(logrus.Fields{
		"schedule": s.spec,
		"next_run": s.NextRun().Format("2006-01-02 15:04:05"),
	}).Info("Merge scheduler started")
}

// Stop останавливает планировщик; контекст завершается после текущего запуска
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// NextRun время следующего запуска (нулевое, если планировщик не запущен)
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// RunNow выполняет проход синхронно вне расписания
func (s *Scheduler) RunNow(ctx context.Context) (*models.MergeSummary, error) {
	return s.job.ExecuteMergeJob(ctx)
}

func (s *Scheduler) run() {
	if _, err := s.job.ExecuteMergeJob(context.Background()); err != nil {
		s.logger.WithError(err).Error("Scheduled merge pass failed")
	}
}
