package service

import (
	"errors"
	"fmt"
	"leave-calendar/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidGroup = errors.New("некорректная группа событий")
	ErrPartialMerge = errors.New("объединенное событие создано, но исходные события удалены не полностью")
)

// MergeExecutor заменяет группу однодневных событий одним событием-диапазоном
type MergeExecutor struct {
	store  LeaveEventStore
	logger *logrus.Logger
}

func NewMergeExecutor(store LeaveEventStore) *MergeExecutor {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &MergeExecutor{
		store:  store,
		logger: logger,
	}
}

func (m *MergeExecutor) SetLogger(logger *logrus.Logger) {
	m.logger = logger
}

// MergeGroup создает одно событие на весь диапазон группы и затем удаляет
// исходные события. Ошибки не возвращаются наружу, а попадают в MergeResult.
func (m *MergeExecutor) MergeGroup(group models.EventGroup) models.MergeResult {
	result := models.MergeResult{
		EmployeeID: group.EmployeeID,
		LeaveType:  group.LeaveType,
		StartDate:  group.StartDate(),
		EndDate:    group.EndDate(),
	}

	log := m.logger.WithFields(logrus.Fields{
		"employee_id": group.EmployeeID,
		"leave_type":  group.LeaveType,
		"events":      len(group.Events),
	})

	if err := validateGroup(group); err != nil {
		log.WithError(err).Warn("Skipping invalid leave group")
		result.Error = err.Error()
		return result
	}

	merged := &models.LeaveEvent{
		EmployeeID:  group.EmployeeID,
		LeaveType:   group.LeaveType,
		StartDate:   result.StartDate,
		EndDate:     result.EndDate,
		Description: firstDescription(group.Events),
	}

	// Сначала создаем, потом удаляем: при ошибке создания данные не меняются
	if err := m.store.Create(merged); err != nil {
		log.WithError(err).Error("Failed to create merged leave event")
		result.Error = fmt.Sprintf("ошибка создания объединенного события: %v", err)
		return result
	}
	result.MergedEventID = merged.ID

	var remaining []uuid.UUID
	var deleteErr error
	for i, e := range group.Events {
		removed, err := m.store.Delete(e.ID)
		if err == nil && !removed {
			err = fmt.Errorf("событие %s не найдено", e.ID)
		}
		if err != nil {
			deleteErr = err
			for _, rest := range group.Events[i:] {
				remaining = append(remaining, rest.ID)
			}
			break
		}
	}

	if deleteErr != nil {
		log.WithError(deleteErr).WithFields(logrus.Fields{
			"merged_event_id":  merged.ID,
			"remaining_events": remaining,
		}).Error("Partial merge: merged event created but originals were not all deleted")
		result.Partial = true
		result.Error = fmt.Sprintf("%v: %v", ErrPartialMerge, deleteErr)
		return result
	}

	result.Success = true
	result.EventsCount = len(group.Events)

	log.WithFields(logrus.Fields{
		"merged_event_id": merged.ID,
		"start_date":      result.StartDate.Format(models.DateLayout),
		"end_date":        result.EndDate.Format(models.DateLayout),
	}).Info("Leave group merged")

	return result
}

func validateGroup(group models.EventGroup) error {
	if len(group.Events) < minGroupSize {
		return fmt.Errorf("%w: нужно минимум %d события, получено %d", ErrInvalidGroup, minGroupSize, len(group.Events))
	}

	for _, e := range group.Events {
		if e.EmployeeID != group.EmployeeID {
			return fmt.Errorf("%w: событие %s принадлежит сотруднику %s, ожидался %s",
				ErrInvalidGroup, e.ID, e.EmployeeID, group.EmployeeID)
		}
		if e.LeaveType != group.LeaveType {
			return fmt.Errorf("%w: событие %s имеет тип %s, ожидался %s",
				ErrInvalidGroup, e.ID, e.LeaveType, group.LeaveType)
		}
	}

	return nil
}

// firstDescription первое непустое описание в порядке дат
func firstDescription(events []models.LeaveEvent) *string {
	for _, e := range events {
		if e.Description != nil && *e.Description != "" {
			desc := *e.Description
			return &desc
		}
	}
	return nil
}
