package models

import "time"

type Employee struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `gorm:"index" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName имя для отображения в сообщениях
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// TableName задает имя таблицы в БД
func (Employee) TableName() string {
	return "employees"
}
