package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout формат дат событий отпуска (ISO)
const DateLayout = "2006-01-02"

type LeaveType string

const (
	LeaveTypeVacation     LeaveType = "vacation"
	LeaveTypePersonal     LeaveType = "personal"
	LeaveTypeSick         LeaveType = "sick"
	LeaveTypeAbsent       LeaveType = "absent"
	LeaveTypeMaternity    LeaveType = "maternity"
	LeaveTypePaternity    LeaveType = "paternity"
	LeaveTypeBereavement  LeaveType = "bereavement"
	LeaveTypeStudy        LeaveType = "study"
	LeaveTypeMilitary     LeaveType = "military"
	LeaveTypeSabbatical   LeaveType = "sabbatical"
	LeaveTypeUnpaid       LeaveType = "unpaid"
	LeaveTypeCompensatory LeaveType = "compensatory"
	LeaveTypeOther        LeaveType = "other"
)

var leaveTypes = map[LeaveType]struct{}{
	LeaveTypeVacation:     {},
	LeaveTypePersonal:     {},
	LeaveTypeSick:         {},
	LeaveTypeAbsent:       {},
	LeaveTypeMaternity:    {},
	LeaveTypePaternity:    {},
	LeaveTypeBereavement:  {},
	LeaveTypeStudy:        {},
	LeaveTypeMilitary:     {},
	LeaveTypeSabbatical:   {},
	LeaveTypeUnpaid:       {},
	LeaveTypeCompensatory: {},
	LeaveTypeOther:        {},
}

// IsValid проверяет, что тип входит в закрытый список
func (t LeaveType) IsValid() bool {
	_, ok := leaveTypes[t]
	return ok
}

type LeaveEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID  string    `gorm:"type:varchar(64);not null;index:idx_leave_events_scan,priority:1" json:"employee_id"`
	LeaveType   LeaveType `gorm:"type:varchar(20);not null;index:idx_leave_events_scan,priority:2" json:"leave_type"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_leave_events_scan,priority:3" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LeaveEvent) TableName() string {
	return "leave_events"
}

// BeforeCreate выдает идентификатор и обрезает даты до дня
func (e *LeaveEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.StartDate = DateOnly(e.StartDate)
	e.EndDate = DateOnly(e.EndDate)
	return e.Validate()
}

// Validate проверяет валидность данных
func (e *LeaveEvent) Validate() error {
	if e.EmployeeID == "" {
		return errors.New("employee id is required")
	}
	if !e.LeaveType.IsValid() {
		return errors.New("unknown leave type: " + string(e.LeaveType))
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return errors.New("start and end dates are required")
	}
	if DateOnly(e.EndDate).Before(DateOnly(e.StartDate)) {
		return errors.New("end date is before start date")
	}
	return nil
}

// IsSingleDay true, если событие занимает ровно один день
func (e *LeaveEvent) IsSingleDay() bool {
	return SameDay(e.StartDate, e.EndDate)
}

// Days количество календарных дней в диапазоне (включительно)
func (e *LeaveEvent) Days() int {
	return DaysBetween(e.StartDate, e.EndDate) + 1
}

// DescriptionText возвращает описание или пустую строку
func (e *LeaveEvent) DescriptionText() string {
	if e.Description == nil {
		return ""
	}
	return *e.Description
}

// DateOnly приводит момент времени к полуночи UTC того же календарного дня
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysBetween число календарных дней от a до b (отрицательное, если b раньше)
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
