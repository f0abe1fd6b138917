package repository_test

import (
	"io"
	"leave-calendar/internal/models"
	"leave-calendar/internal/repository"
	"leave-calendar/internal/testutil/testdb"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaveEventRepo(t *testing.T) *repository.GormLeaveEventRepository {
	t.Helper()
	repo, err := repository.NewGormLeaveEventRepository(testdb.New(t))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	repo.SetLogger(logger)
	return repo
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func createEvent(t *testing.T, repo repository.LeaveEventRepository, employeeID string, leaveType models.LeaveType, start, end string) *models.LeaveEvent {
	t.Helper()
	e := &models.LeaveEvent{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  date(t, start),
		EndDate:    date(t, end),
	}
	require.NoError(t, repo.Create(e))
	return e
}

func TestLeaveEventRepository_CreateAssignsID(t *testing.T) {
	repo := newLeaveEventRepo(t)

	desc := "Songkran trip"
	e := &models.LeaveEvent{
		EmployeeID:  "E1",
		LeaveType:   models.LeaveTypeVacation,
		StartDate:   time.Date(2025, 4, 13, 15, 30, 0, 0, time.UTC),
		EndDate:     date(t, "2025-04-15"),
		Description: &desc,
	}
	require.NoError(t, repo.Create(e))
	assert.NotEqual(t, uuid.Nil, e.ID)

	got, err := repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "E1", got.EmployeeID)
	assert.Equal(t, models.LeaveTypeVacation, got.LeaveType)
	assert.Equal(t, "2025-04-13", got.StartDate.Format(models.DateLayout))
	assert.Equal(t, "2025-04-15", got.EndDate.Format(models.DateLayout))
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestLeaveEventRepository_CreateRejectsInvalid(t *testing.T) {
	repo := newLeaveEventRepo(t)

	err := repo.Create(&models.LeaveEvent{
		EmployeeID: "E1",
		LeaveType:  "holiday",
		StartDate:  date(t, "2025-04-13"),
		EndDate:    date(t, "2025-04-13"),
	})
	assert.Error(t, err)

	err = repo.Create(&models.LeaveEvent{
		EmployeeID: "E1",
		LeaveType:  models.LeaveTypeSick,
		StartDate:  date(t, "2025-04-13"),
		EndDate:    date(t, "2025-04-12"),
	})
	assert.Error(t, err)
}

func TestLeaveEventRepository_FindSingleDayEventsOrdering(t *testing.T) {
	repo := newLeaveEventRepo(t)

	createEvent(t, repo, "E2", models.LeaveTypeSick, "2025-12-23", "2025-12-23")
	createEvent(t, repo, "E1", models.LeaveTypeVacation, "2025-12-24", "2025-12-24")
	createEvent(t, repo, "E1", models.LeaveTypeSick, "2025-12-20", "2025-12-20")
	createEvent(t, repo, "E2", models.LeaveTypeSick, "2025-12-22", "2025-12-22")
	createEvent(t, repo, "E1", models.LeaveTypeVacation, "2025-12-22", "2025-12-22")
	createEvent(t, repo, "E1", models.LeaveTypeVacation, "2025-12-01", "2025-12-05")

	events, err := repo.FindSingleDayEvents()
	require.NoError(t, err)

	got := make([]string, 0, len(events))
	for _, e := range events {
		got = append(got, e.EmployeeID+"/"+string(e.LeaveType)+"/"+e.StartDate.Format(models.DateLayout))
	}
	assert.Equal(t, []string{
		"E1/sick/2025-12-20",
		"E1/vacation/2025-12-22",
		"E1/vacation/2025-12-24",
		"E2/sick/2025-12-22",
		"E2/sick/2025-12-23",
	}, got)
}

func TestLeaveEventRepository_Delete(t *testing.T) {
	repo := newLeaveEventRepo(t)
	e := createEvent(t, repo, "E1", models.LeaveTypeVacation, "2025-12-22", "2025-12-22")

	removed, err := repo.Delete(e.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = repo.GetByID(e.ID)
	assert.ErrorIs(t, err, repository.ErrEventNotFound)

	removed, err = repo.Delete(e.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLeaveEventRepository_GetByEmployeeID(t *testing.T) {
	repo := newLeaveEventRepo(t)
	createEvent(t, repo, "E1", models.LeaveTypeVacation, "2025-12-22", "2025-12-22")
	createEvent(t, repo, "E1", models.LeaveTypeSick, "2025-11-01", "2025-11-03")
	createEvent(t, repo, "E2", models.LeaveTypeSick, "2025-11-01", "2025-11-01")

	events, err := repo.GetByEmployeeID("E1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2025-11-01", events[0].StartDate.Format(models.DateLayout))
	assert.Equal(t, "2025-12-22", events[1].StartDate.Format(models.DateLayout))
}
