package holidays

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Holiday один нерабочий день
type Holiday struct {
	Date time.Time
	Name string
}

// yamlFile структура YAML файла со списком праздников
type yamlFile struct {
	Holidays []yamlHoliday `yaml:"holidays"`
}

type yamlHoliday struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

// ParseFile разбирает файл праздников по расширению (.yaml/.yml или .ics).
// Повторяющиеся события ICS раскрываются в диапазоне [from, to].
func ParseFile(path string, from, to time.Time) ([]Holiday, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".ics", ".ical":
		return ParseICS(data, from, to)
	default:
		return nil, fmt.Errorf("unsupported holidays file extension: %s", filepath.Ext(path))
	}
}

// ParseYAML разбирает список вида holidays: [{date: 2025-12-05, name: ...}]
func ParseYAML(data []byte) ([]Holiday, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	out := make([]Holiday, 0, len(file.Holidays))
	for _, h := range file.Holidays {
		date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(h.Date), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse holiday date '%s': %w", h.Date, err)
		}
		out = append(out, Holiday{Date: date, Name: h.Name})
	}

	return dedupe(out), nil
}

// ParseICS берет из календаря только события на весь день.
// RRULE (например FREQ=YEARLY) раскрывается в пределах [from, to].
func ParseICS(data []byte, from, to time.Time) ([]Holiday, error) {
	if len(data) == 0 {
		return nil, errors.New("empty ICS body")
	}
	if to.Before(from) {
		return nil, errors.New("holiday range end is before start")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ICS: %w", err)
	}

	from = dateOnly(from)
	to = dateOnly(to)

	out := make([]Holiday, 0)
	for _, ev := range cal.Events() {
		startProp := ev.GetProperty(ical.ComponentPropertyDtStart)
		if startProp == nil {
			continue
		}
		// Праздники в календарях задаются датой без времени
		value := strings.TrimSpace(startProp.Value)
		if strings.Contains(value, "T") {
			continue
		}
		start, err := time.ParseInLocation("20060102", value, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DTSTART '%s': %w", value, err)
		}

		name := ""
		if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
			name = p.Value
		}

		rruleProp := ev.GetProperty(ical.ComponentPropertyRrule)
		if rruleProp == nil || rruleProp.Value == "" {
			if !start.Before(from) && !start.After(to) {
				out = append(out, Holiday{Date: start, Name: name})
			}
			continue
		}

		r, err := rrule.StrToRRule(rruleProp.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RRULE '%s': %w", rruleProp.Value, err)
		}
		r.DTStart(start)
		for _, occ := range r.Between(from, to, true) {
			out = append(out, Holiday{Date: dateOnly(occ), Name: name})
		}
	}

	return dedupe(out), nil
}

func dedupe(in []Holiday) []Holiday {
	seen := make(map[string]struct{}, len(in))
	out := make([]Holiday, 0, len(in))
	for _, h := range in {
		key := h.Date.Format(dateLayout)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Holiday{Date: dateOnly(h.Date), Name: h.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
