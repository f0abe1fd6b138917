package repository

import (
	"leave-calendar/internal/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HolidayRepository interface {
	Create(holiday *models.Holiday) error
	GetByDate(date time.Time) (*models.Holiday, error)
	GetByYear(year int) ([]models.Holiday, error)
	GetAll() ([]models.Holiday, error)
	BulkUpsert(holidays []models.Holiday) error
	DeleteAll() error
	IsHoliday(date time.Time) (bool, error)
}

type GormHolidayRepository struct {
	db *gorm.DB
}

func NewGormHolidayRepository(db *gorm.DB) (*GormHolidayRepository, error) {
	// Автомиграция для таблицы holidays
	if err := db.AutoMigrate(&models.Holiday{}); err != nil {
		return nil, err
	}

	return &GormHolidayRepository{db: db}, nil
}

func (r *GormHolidayRepository) Create(holiday *models.Holiday) error {
	return r.db.Create(holiday).Error
}

// BulkUpsert сохраняет праздники, при совпадении даты обновляет название
func (r *GormHolidayRepository) BulkUpsert(holidays []models.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&holidays).Error
}

func (r *GormHolidayRepository) GetByDate(date time.Time) (*models.Holiday, error) {
	var holiday models.Holiday
	err := r.db.Where("date = ?", models.DateOnly(date)).First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *GormHolidayRepository) GetByYear(year int) ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := r.db.Where("year = ?", year).Order("date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *GormHolidayRepository) GetAll() ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := r.db.Order("date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *GormHolidayRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM holidays").Error
}

func (r *GormHolidayRepository) IsHoliday(date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Holiday{}).
		Where("date = ?", models.DateOnly(date)).
		Count(&count).Error
	return count > 0, err
}
