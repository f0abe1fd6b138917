package handler

import (
	"context"
	"errors"
	"fmt"
	"leave-calendar/internal/models"
	"leave-calendar/internal/service"
	"leave-calendar/pkg/telegram"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// maxPreviewGroups сколько групп показывать в /groups
const maxPreviewGroups = 20

// runMerge запускает проход объединения вне расписания
func (h *Handler) runMerge() string {
	summary, err := h.mergeJob.ExecuteMergeJob(context.Background())
	if errors.Is(err, service.ErrMergeInProgress) {
		return "⏳ Объединение уже выполняется, попробуйте позже."
	}
	if err != nil {
		return "❌ Ошибка объединения: " + err.Error()
	}
	if summary.Groups == 0 {
		return "✅ Нечего объединять: подряд идущих однодневных событий нет."
	}
	return telegram.FormatMergeSummary(summary)
}

// previewGroups показывает найденные группы без изменений в базе
func (h *Handler) previewGroups() string {
	groups, err := h.mergeJob.Preview()
	if err != nil {
		return "❌ Ошибка поиска групп: " + err.Error()
	}
	if len(groups) == 0 {
		return "✅ Групп для объединения нет."
	}

	names := h.employeeNames(groups)

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Групп для объединения: %d\n\n", len(groups))
	for i, g := range groups {
		if i == maxPreviewGroups {
			fmt.Fprintf(&b, "... и еще %d\n", len(groups)-maxPreviewGroups)
			break
		}
		fmt.Fprintf(&b, "• %s, %s: %s..%s (%d дн.)\n",
			names[g.EmployeeID], g.LeaveType,
			g.StartDate().Format(models.DateLayout), g.EndDate().Format(models.DateLayout),
			len(g.Events))
	}
	return b.String()
}

func (h *Handler) lastMerge() string {
	summary := h.mergeJob.LastSummary()
	if summary == nil {
		return "ℹ️ Объединение еще не запускалось."
	}
	return fmt.Sprintf("🕒 %s\n\n%s",
		summary.FinishedAt.Format("02.01.2006 15:04:05"),
		telegram.FormatMergeSummary(summary))
}

func (h *Handler) listHolidays(args string) string {
	year := time.Now().Year()
	if args = strings.TrimSpace(args); args != "" {
		parsed, err := strconv.Atoi(args)
		if err != nil || parsed < 2000 || parsed > 2100 {
			return "❌ Неверный год. Пример: /holidays 2025"
		}
		year = parsed
	}

	list, err := h.holidayService.GetHolidaysForYear(year)
	if err != nil {
		return "❌ Ошибка получения праздников: " + err.Error()
	}
	if len(list) == 0 {
		return fmt.Sprintf("ℹ️ Праздники на %d год не загружены.", year)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Праздники %d:\n", year)
	for _, d := range list {
		fmt.Fprintf(&b, "%s %s\n", d.Date.Format("02.01"), d.Name)
	}
	return b.String()
}

// employeeNames имена сотрудников для групп; неизвестные показываются по ID
func (h *Handler) employeeNames(groups []models.EventGroup) map[string]string {
	names := make(map[string]string, len(groups))
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, ok := names[g.EmployeeID]; !ok {
			names[g.EmployeeID] = g.EmployeeID
			ids = append(ids, g.EmployeeID)
		}
	}

	if h.employeeRepo == nil {
		return names
	}

	employees, err := h.employeeRepo.GetByIDs(ids)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load employee names")
		return names
	}
	for id, e := range employees {
		names[id] = e.FullName()
	}
	return names
}
