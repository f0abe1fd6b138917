package handler

import (
	"io"
	"leave-calendar/internal/models"
	"leave-calendar/internal/repository"
	"leave-calendar/internal/service"
	"leave-calendar/internal/testutil/testdb"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminChat int64 = 1001

type captureSender struct {
	sent []tgbotapi.MessageConfig
}

func (s *captureSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

type fixture struct {
	handler  *Handler
	sender   *captureSender
	events   repository.LeaveEventRepository
	holidays repository.HolidayRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	events, err := repository.NewGormLeaveEventRepository(db)
	require.NoError(t, err)
	events.SetLogger(quiet)
	holidayRepo, err := repository.NewGormHolidayRepository(db)
	require.NoError(t, err)
	employees, err := repository.NewGormEmployeeRepository(db)
	require.NoError(t, err)
	require.NoError(t, employees.Create(&models.Employee{ID: "E1", FirstName: "Somchai", LastName: "Jaidee"}))

	grouping := service.NewGroupingEngine(events, service.CalendarAdjacency{})
	grouping.SetLogger(quiet)
	executor := service.NewMergeExecutor(events)
	executor.SetLogger(quiet)
	job := service.NewMergeJob(grouping, executor)
	job.SetLogger(quiet)

	sender := &captureSender{}
	return &fixture{
		handler:  NewHandler(sender, job, service.NewHolidayService(holidayRepo), employees, adminChat),
		sender:   sender,
		events:   events,
		holidays: holidayRepo,
	}
}

func (f *fixture) addSingle(t *testing.T, employeeID string, dates ...string) {
	t.Helper()
	for _, s := range dates {
		d, err := models.ParseDate(s)
		require.NoError(t, err)
		require.NoError(t, f.events.Create(&models.LeaveEvent{
			EmployeeID: employeeID,
			LeaveType:  models.LeaveTypeVacation,
			StartDate:  d,
			EndDate:    d,
		}))
	}
}

func TestCommandReply_AdminOnly(t *testing.T) {
	f := newFixture(t)

	for _, cmd := range []string{"merge", "groups", "lastmerge", "holidays"} {
		t.Run(cmd, func(t *testing.T) {
			reply := f.handler.commandReply(7, cmd, "")
			assert.Contains(t, reply, "Доступ запрещен")
		})
	}
}

func TestCommandReply_Help(t *testing.T) {
	f := newFixture(t)

	assert.NotContains(t, f.handler.commandReply(7, "help", ""), "/merge")
	assert.Contains(t, f.handler.commandReply(adminChat, "start", ""), "/merge")
	assert.Contains(t, f.handler.commandReply(adminChat, "nope", ""), "Неизвестная команда")
}

func TestCommandReply_GroupsThenMerge(t *testing.T) {
	f := newFixture(t)
	f.addSingle(t, "E1", "2025-12-22", "2025-12-23", "2025-12-24")
	f.addSingle(t, "E9", "2025-12-01", "2025-12-02")

	reply := f.handler.commandReply(adminChat, "groups", "")
	assert.Contains(t, reply, "Групп для объединения: 2")
	assert.Contains(t, reply, "Somchai Jaidee, vacation: 2025-12-22..2025-12-24 (3 дн.)")
	assert.Contains(t, reply, "E9, vacation: 2025-12-01..2025-12-02 (2 дн.)")

	assert.Contains(t, f.handler.commandReply(adminChat, "lastmerge", ""), "еще не запускалось")

	reply = f.handler.commandReply(adminChat, "merge", "")
	assert.Contains(t, reply, "Успешно: 2")
	assert.Contains(t, reply, "Событий объединено: 5")

	events, err := f.events.GetByEmployeeID("E1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].Days())

	assert.Contains(t, f.handler.commandReply(adminChat, "merge", ""), "Нечего объединять")
	assert.Contains(t, f.handler.commandReply(adminChat, "groups", ""), "Групп для объединения нет")
	assert.Contains(t, f.handler.commandReply(adminChat, "lastmerge", ""), "Групп обработано: 0")
}

func TestCommandReply_Holidays(t *testing.T) {
	f := newFixture(t)
	d, err := models.ParseDate("2025-12-05")
	require.NoError(t, err)
	require.NoError(t, f.holidays.BulkUpsert([]models.Holiday{{Date: d, Name: "Father's Day"}}))

	assert.Contains(t, f.handler.commandReply(adminChat, "holidays", "2025"), "05.12 Father's Day")
	assert.Contains(t, f.handler.commandReply(adminChat, "holidays", "2024"), "не загружены")
	assert.Contains(t, f.handler.commandReply(adminChat, "holidays", "abc"), "Неверный год")
	assert.Contains(t, f.handler.commandReply(adminChat, "holidays", "1900"), "Неверный год")
}

func TestHandleMessage_RepliesToCommands(t *testing.T) {
	f := newFixture(t)

	f.handler.handleMessage(&tgbotapi.Message{
		Text:     "/help",
		Chat:     &tgbotapi.Chat{ID: adminChat},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}},
	})
	f.handler.handleMessage(&tgbotapi.Message{
		Text: "hello",
		Chat: &tgbotapi.Chat{ID: adminChat},
	})

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, adminChat, f.sender.sent[0].ChatID)
	assert.Contains(t, f.sender.sent[0].Text, "/lastmerge")
}
