package repository

import (
	"errors"
	"leave-calendar/internal/models"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByID(id string) (*models.Employee, error)
	GetByIDs(ids []string) (map[string]models.Employee, error)
}

type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) (*GormEmployeeRepository, error) {
	// Автомиграция - создает таблицы если их нет
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		return nil, err
	}

	return &GormEmployeeRepository{db: db}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	var existing models.Employee
	result := r.db.Where("id = ?", employee.ID).First(&existing)
	if result.Error == nil {
		return errors.New("сотрудник уже существует")
	}

	return r.db.Create(employee).Error
}

func (r *GormEmployeeRepository) GetByID(id string) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.Where("id = ?", id).First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &employee, nil
}

// GetByIDs возвращает сотрудников по идентификаторам, отсутствующие пропускаются
func (r *GormEmployeeRepository) GetByIDs(ids []string) (map[string]models.Employee, error) {
	byID := make(map[string]models.Employee, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var employees []models.Employee
	if err := r.db.Where("id IN ?", ids).Find(&employees).Error; err != nil {
		return nil, err
	}

	for _, e := range employees {
		byID[e.ID] = e
	}
	return byID, nil
}
