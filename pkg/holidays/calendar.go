package holidays

import "time"

// Calendar набор праздников в памяти для быстрых проверок по дате.
// Нулевой (nil) календарь не содержит праздников.
type Calendar struct {
	days map[string]string
}

func NewCalendar(list []Holiday) *Calendar {
	c := &Calendar{days: make(map[string]string, len(list))}
	for _, h := range list {
		c.days[h.Date.Format(dateLayout)] = h.Name
	}
	return c
}

// IsHoliday проверяет, является ли дата праздником
func (c *Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.Name(date)
	return ok
}

// Name возвращает название праздника на дату
func (c *Calendar) Name(date time.Time) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.days[date.Format(dateLayout)]
	return name, ok
}

func (c *Calendar) Len() int {
	if c == nil {
		return 0
	}
	return len(c.days)
}

// IsNonWorkingDay выходной (суббота/воскресенье) или праздник
func (c *Calendar) IsNonWorkingDay(date time.Time) bool {
	return IsWeekend(date) || c.IsHoliday(date)
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
