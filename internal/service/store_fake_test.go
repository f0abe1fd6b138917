package service

import (
	"errors"
	"io"
	"leave-calendar/internal/models"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// memoryStore хранилище событий в памяти с внедрением ошибок
type memoryStore struct {
	mu     sync.Mutex
	events map[uuid.UUID]models.LeaveEvent

	findErr error
	// createErrFor ошибка создания по сотруднику
	createErrFor map[string]error
	// deleteErrFor ошибка удаления по идентификатору
	deleteErrFor map[uuid.UUID]error
	// missingOnDelete удаление возвращает false без ошибки
	missingOnDelete map[uuid.UUID]bool

	created []models.LeaveEvent
	deleted []uuid.UUID
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		events:          make(map[uuid.UUID]models.LeaveEvent),
		createErrFor:    make(map[string]error),
		deleteErrFor:    make(map[uuid.UUID]error),
		missingOnDelete: make(map[uuid.UUID]bool),
	}
}

func (s *memoryStore) add(t *testing.T, employeeID string, leaveType models.LeaveType, start, end string, desc ...string) models.LeaveEvent {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	e := models.LeaveEvent{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  mustDate(t, start),
		EndDate:    mustDate(t, end),
	}
	if len(desc) > 0 {
		d := desc[0]
		e.Description = &d
	}
	s.events[e.ID] = e
	return e
}

func (s *memoryStore) single(t *testing.T, employeeID string, leaveType models.LeaveType, date string, desc ...string) models.LeaveEvent {
	t.Helper()
	return s.add(t, employeeID, leaveType, date, date, desc...)
}

func (s *memoryStore) FindSingleDayEvents() ([]models.LeaveEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}

	out := make([]models.LeaveEvent, 0, len(s.events))
	for _, e := range s.events {
		if e.IsSingleDay() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		if out[i].LeaveType != out[j].LeaveType {
			return out[i].LeaveType < out[j].LeaveType
		}
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *memoryStore) Create(event *models.LeaveEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.createErrFor[event.EmployeeID]; err != nil {
		return err
	}
	if err := event.Validate(); err != nil {
		return err
	}
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	s.events[event.ID] = *event
	s.created = append(s.created, *event)
	return nil
}

func (s *memoryStore) Delete(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deleteErrFor[id]; err != nil {
		return false, err
	}
	if s.missingOnDelete[id] {
		return false, nil
	}
	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	s.deleted = append(s.deleted, id)
	return true, nil
}

func (s *memoryStore) has(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.events[id]
	return ok
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

var errStoreDown = errors.New("store unavailable")

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func groupDates(g models.EventGroup) []string {
	out := make([]string, 0, len(g.Events))
	for _, e := range g.Events {
		out = append(out, e.StartDate.Format(models.DateLayout))
	}
	return out
}
