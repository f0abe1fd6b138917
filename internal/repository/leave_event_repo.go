package repository

import (
	"errors"
	"leave-calendar/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("leave event not found")

type LeaveEventRepository interface {
	Create(event *models.LeaveEvent) error
	GetByID(id uuid.UUID) (*models.LeaveEvent, error)
	GetByEmployeeID(employeeID string) ([]models.LeaveEvent, error)
	// FindSingleDayEvents возвращает все однодневные события,
	// отсортированные по (employee_id, leave_type, start_date)
	FindSingleDayEvents() ([]models.LeaveEvent, error)
	// Delete возвращает false, если строка не была удалена
	Delete(id uuid.UUID) (bool, error)
}

type GormLeaveEventRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormLeaveEventRepository(db *gorm.DB) (*GormLeaveEventRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.LeaveEvent{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate leave_events table")
		return nil, err
	}

	return &GormLeaveEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormLeaveEventRepository) SetLogger(logger *logrus.Logger) {
	r.logger = logger
}

func (r *GormLeaveEventRepository) Create(event *models.LeaveEvent) error {
	result := r.db.Create(event)
	if result.Error != nil {
		r.logger.WithError(result.Error).WithFields(logrus.Fields{
			"employee_id": event.EmployeeID,
			"leave_type":  event.LeaveType,
		}).Error("Failed to create leave event")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":          event.ID,
		"employee_id": event.EmployeeID,
		"start_date":  event.StartDate.Format(models.DateLayout),
		"end_date":    event.EndDate.Format(models.DateLayout),
	}).Debug("Leave event created")

	return nil
}

func (r *GormLeaveEventRepository) GetByID(id uuid.UUID) (*models.LeaveEvent, error) {
	var event models.LeaveEvent
	err := r.db.Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *GormLeaveEventRepository) GetByEmployeeID(employeeID string) ([]models.LeaveEvent, error) {
	var events []models.LeaveEvent
	err := r.db.Where("employee_id = ?", employeeID).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}

func (r *GormLeaveEventRepository) FindSingleDayEvents() ([]models.LeaveEvent, error) {
	var events []models.LeaveEvent
	err := r.db.Where("start_date = end_date").
		Order("employee_id ASC").
		Order("leave_type ASC").
		Order("start_date ASC").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to scan single-day leave events")
		return nil, err
	}
	return events, nil
}

func (r *GormLeaveEventRepository) Delete(id uuid.UUID) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&models.LeaveEvent{})
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to delete leave event")
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
