package service

import (
	"context"
	"errors"
	"leave-calendar/internal/models"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrMergeInProgress = errors.New("merge pass is already running")

// SummaryNotifier получает итог прохода, в котором были группы
type SummaryNotifier interface {
	NotifyMergeSummary(summary *models.MergeSummary) error
}

// MergeRecorder учитывает метрики прохода
type MergeRecorder interface {
	RecordPass(ctx context.Context, summary *models.MergeSummary)
}

// MergeJob выполняет полный проход: поиск групп и их последовательное объединение
type MergeJob struct {
	grouping *GroupingEngine
	executor *MergeExecutor
	notifier SummaryNotifier
	recorder MergeRecorder
	logger   *logrus.Logger
	now      func() time.Time

	running sync.Mutex

	mu   sync.RWMutex
	last *models.MergeSummary
}

func NewMergeJob(grouping *GroupingEngine, executor *MergeExecutor) *MergeJob {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &MergeJob{
		grouping: grouping,
		executor: executor,
		logger:   logger,
		now:      time.Now,
	}
}

func (j *MergeJob) SetLogger(logger *logrus.Logger) {
	j.logger = logger
}

func (j *MergeJob) SetNotifier(notifier SummaryNotifier) {
	j.notifier = notifier
}

func (j *MergeJob) SetRecorder(recorder MergeRecorder) {
	j.recorder = recorder
}

// Preview возвращает найденные группы без изменения данных
func (j *MergeJob) Preview() ([]models.EventGroup, error) {
	return j.grouping.FindConsecutiveGroups()
}

// LastSummary итог последнего завершенного прохода или nil
func (j *MergeJob) LastSummary() *models.MergeSummary {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.last
}

// ExecuteMergeJob выполняет один проход объединения. Ошибка возвращается
// только если не удалось прочитать события или проход уже идет.
func (j *MergeJob) ExecuteMergeJob(ctx context.Context) (*models.MergeSummary, error) {
	if !j.running.TryLock() {
		j.logger.Warn("Merge pass requested while another pass is running")
		return nil, ErrMergeInProgress
	}
	defer j.running.Unlock()

	summary := &models.MergeSummary{StartedAt: j.now()}
	j.logger.WithField("policy", j.grouping.Policy().Name()).Info("Starting leave merge pass")

	groups, err := j.grouping.FindConsecutiveGroups()
	if err != nil {
		j.logger.WithError(err).Error("Merge pass aborted")
		return nil, err
	}

	if len(groups) == 0 {
		summary.FinishedAt = j.now()
		j.logger.Info("No consecutive single-day leave events to merge")
		j.finish(ctx, summary)
		return summary, nil
	}

	for _, group := range groups {
		result := j.executor.MergeGroup(group)
		summary.Add(result)
	}
	summary.FinishedAt = j.now()

	j.logger.WithFields(logrus.Fields{
		"processed":    summary.Groups,
		"succeeded":    summary.Succeeded,
		"failed":       summary.Failed,
		"partial":      summary.PartialFailures,
		"consolidated": summary.TotalEventsConsolidated,
		"duration":     summary.Duration().String(),
	}).Info("Leave merge pass completed")

	j.finish(ctx, summary)

	if j.notifier != nil {
		if err := j.notifier.NotifyMergeSummary(summary); err != nil {
			j.logger.WithError(err).Warn("Failed to deliver merge summary")
		}
	}

	return summary, nil
}

func (j *MergeJob) finish(ctx context.Context, summary *models.MergeSummary) {
	j.mu.Lock()
	j.last = summary
	j.mu.Unlock()

	if j.recorder != nil {
		j.recorder.RecordPass(ctx, summary)
	}
}
