package models

import (
	"time"

	"github.com/google/uuid"
)

// EventGroup серия однодневных событий одного сотрудника и одного типа,
// идущих подряд по выбранной политике смежности
type EventGroup struct {
	EmployeeID string
	LeaveType  LeaveType
	Events     []LeaveEvent
}

// StartDate дата первого события группы
func (g *EventGroup) StartDate() time.Time {
	if len(g.Events) == 0 {
		return time.Time{}
	}
	return g.Events[0].StartDate
}

// EndDate дата последнего события группы
func (g *EventGroup) EndDate() time.Time {
	if len(g.Events) == 0 {
		return time.Time{}
	}
	return g.Events[len(g.Events)-1].StartDate
}

func (g *EventGroup) EventIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(g.Events))
	for _, e := range g.Events {
		ids = append(ids, e.ID)
	}
	return ids
}

// MergeResult результат объединения одной группы
type MergeResult struct {
	Success     bool
	EventsCount int
	StartDate   time.Time
	EndDate     time.Time
	Error       string

	EmployeeID    string
	LeaveType     LeaveType
	MergedEventID uuid.UUID
	// Partial выставляется, когда новое событие создано, но часть исходных не удалена
	Partial bool
}

// MergeSummary итог одного прохода объединения
type MergeSummary struct {
	StartedAt               time.Time
	FinishedAt              time.Time
	Groups                  int
	Succeeded               int
	Failed                  int
	PartialFailures         int
	TotalEventsConsolidated int
	Results                 []MergeResult
}

// Add учитывает результат группы в итоге
func (s *MergeSummary) Add(result MergeResult) {
	s.Groups++
	if result.Success {
		s.Succeeded++
		s.TotalEventsConsolidated += result.EventsCount
	} else {
		s.Failed++
		if result.Partial {
			s.PartialFailures++
		}
	}
	s.Results = append(s.Results, result)
}

func (s *MergeSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
