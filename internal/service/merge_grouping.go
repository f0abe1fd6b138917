package service

import (
	"fmt"
	"leave-calendar/internal/models"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// minGroupSize минимальное количество событий для объединения
const minGroupSize = 2

// LeaveEventStore хранилище событий, с которым работает объединение
type LeaveEventStore interface {
	FindSingleDayEvents() ([]models.LeaveEvent, error)
	Create(event *models.LeaveEvent) error
	Delete(id uuid.UUID) (bool, error)
}

type groupKey struct {
	employeeID string
	leaveType  models.LeaveType
}

// GroupingEngine ищет максимальные серии смежных однодневных событий
type GroupingEngine struct {
	store  LeaveEventStore
	policy AdjacencyPolicy
	logger *logrus.Logger
}

func NewGroupingEngine(store LeaveEventStore, policy AdjacencyPolicy) *GroupingEngine {
	if policy == nil {
		policy = CalendarAdjacency{}
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &GroupingEngine{
		store:  store,
		policy: policy,
		logger: logger,
	}
}

func (g *GroupingEngine) SetLogger(logger *logrus.Logger) {
	g.logger = logger
}

func (g *GroupingEngine) Policy() AdjacencyPolicy {
	return g.policy
}

// FindConsecutiveGroups читает снимок однодневных событий и возвращает серии
// из двух и более событий. Внутри группы события идут по возрастанию даты.
func (g *GroupingEngine) FindConsecutiveGroups() ([]models.EventGroup, error) {
	events, err := g.store.FindSingleDayEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to read single-day events: %w", err)
	}

	groups := GroupConsecutive(events, g.policy)

	g.logger.WithFields(logrus.Fields{
		"events": len(events),
		"groups": len(groups),
		"policy": g.policy.Name(),
	}).Info("Consecutive leave groups detected")

	return groups, nil
}

// GroupConsecutive разбивает события на корзины (сотрудник, тип) и
// выделяет в каждой корзине серии смежных дат
func GroupConsecutive(events []models.LeaveEvent, policy AdjacencyPolicy) []models.EventGroup {
	if policy == nil {
		policy = CalendarAdjacency{}
	}

	var order []groupKey
	buckets := make(map[groupKey][]models.LeaveEvent)
	for _, e := range events {
		if !e.IsSingleDay() {
			continue
		}
		key := groupKey{employeeID: e.EmployeeID, leaveType: e.LeaveType}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], e)
	}

	groups := make([]models.EventGroup, 0)
	for _, key := range order {
		bucket := buckets[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartDate.Before(bucket[j].StartDate)
		})

		run := []models.LeaveEvent{bucket[0]}
		for _, e := range bucket[1:] {
			if policy.Adjacent(run[len(run)-1].StartDate, e.StartDate) {
				run = append(run, e)
				continue
			}
			if len(run) >= minGroupSize {
				groups = append(groups, newGroup(key, run))
			}
			run = []models.LeaveEvent{e}
		}
		if len(run) >= minGroupSize {
			groups = append(groups, newGroup(key, run))
		}
	}

	return groups
}

func newGroup(key groupKey, run []models.LeaveEvent) models.EventGroup {
	return models.EventGroup{
		EmployeeID: key.employeeID,
		LeaveType:  key.leaveType,
		Events:     run,
	}
}
