package service

import (
	"fmt"
	"leave-calendar/internal/models"
	"leave-calendar/pkg/holidays"
	"strings"
	"time"
)

const (
	AdjacencyCalendar = "calendar"
	AdjacencyBusiness = "business"
)

// AdjacencyPolicy решает, продолжает ли дата next серию, закончившуюся на prev
type AdjacencyPolicy interface {
	Name() string
	Adjacent(prev, next time.Time) bool
}

// CalendarAdjacency смежность строго "следующий календарный день"
type CalendarAdjacency struct{}

func (CalendarAdjacency) Name() string { return AdjacencyCalendar }

func (CalendarAdjacency) Adjacent(prev, next time.Time) bool {
	return models.DaysBetween(prev, next) == 1
}

// BusinessAdjacency считает даты смежными, если все дни между ними
// выходные или праздники из календаря. Пятница и понедельник смежны.
type BusinessAdjacency struct {
	Calendar *holidays.Calendar
}

func (BusinessAdjacency) Name() string { return AdjacencyBusiness }

func (p BusinessAdjacency) Adjacent(prev, next time.Time) bool {
	if models.DaysBetween(prev, next) < 1 {
		return false
	}

	for day := models.DateOnly(prev).AddDate(0, 0, 1); day.Before(models.DateOnly(next)); day = day.AddDate(0, 0, 1) {
		if !p.Calendar.IsNonWorkingDay(day) {
			return false
		}
	}
	return true
}

// ParseAdjacencyPolicy возвращает политику по имени из конфигурации
func ParseAdjacencyPolicy(name string, calendar *holidays.Calendar) (AdjacencyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AdjacencyCalendar:
		return CalendarAdjacency{}, nil
	case AdjacencyBusiness:
		return BusinessAdjacency{Calendar: calendar}, nil
	default:
		return nil, fmt.Errorf("unknown adjacency policy: %q", name)
	}
}
