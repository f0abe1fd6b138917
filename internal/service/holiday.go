package service

import (
	"fmt"
	"leave-calendar/internal/models"
	"leave-calendar/internal/repository"
	"leave-calendar/pkg/holidays"
	"time"

	"github.com/sirupsen/logrus"
)

type HolidayService struct {
	repo repository.HolidayRepository
	now  func() time.Time
}

func NewHolidayService(repo repository.HolidayRepository) *HolidayService {
	return &HolidayService{repo: repo, now: time.Now}
}

// LoadFromFile загружает праздники из YAML или ICS файла в базу данных.
// Повторяющиеся праздники ICS раскрываются на years лет начиная с текущего.
func (s *HolidayService) LoadFromFile(filePath string, years int) (int, error) {
	if years <= 0 {
		years = 1
	}
	year := s.now().Year()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year+years-1, time.December, 31, 0, 0, 0, 0, time.UTC)

	parsed, err := holidays.ParseFile(filePath, from, to)
	if err != nil {
		return 0, err
	}

	list := make([]models.Holiday, 0, len(parsed))
	for _, h := range parsed {
		list = append(list, models.Holiday{Date: h.Date, Name: h.Name})
	}

	// Удаляем старые записи (чтобы избежать дублирования)
	if err := s.repo.DeleteAll(); err != nil {
		logrus.Warnf("Failed to delete old holidays: %v", err)
	}

	if err := s.repo.BulkUpsert(list); err != nil {
		return 0, fmt.Errorf("failed to save holidays: %w", err)
	}

	return len(list), nil
}

// Calendar строит календарь праздников в памяти для политики рабочих дней
func (s *HolidayService) Calendar() (*holidays.Calendar, error) {
	stored, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	list := make([]holidays.Holiday, 0, len(stored))
	for _, h := range stored {
		list = append(list, holidays.Holiday{Date: h.Date, Name: h.Name})
	}
	return holidays.NewCalendar(list), nil
}

// GetHolidaysForYear возвращает праздники за год
func (s *HolidayService) GetHolidaysForYear(year int) ([]models.Holiday, error) {
	return s.repo.GetByYear(year)
}

// IsHoliday проверяет, является ли дата праздником
func (s *HolidayService) IsHoliday(date time.Time) (bool, error) {
	return s.repo.IsHoliday(date)
}
