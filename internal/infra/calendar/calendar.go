// Package calendar загружает календарь государственных праздников из YAML файла
package calendar

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

const recurringFormat = "01-02"

// HolidayEntry запись праздника в файле.
// Date - "2006-01-02" или "01-02" для ежегодного праздника.
// EndDate задает последний день многодневного праздника (включительно).
type HolidayEntry struct {
	Date    string `yaml:"date"`
	EndDate string `yaml:"end_date,omitempty"`
	Name    string `yaml:"name"`
}

type file struct {
	Holidays []HolidayEntry `yaml:"holidays"`
}

// Calendar календарь государственных праздников
type Calendar struct {
	dates     map[string]string // "2006-01-02" -> название
	recurring map[string]string // "01-02" -> название
}

// Empty возвращает календарь без праздников
func Empty() *Calendar {
	return &Calendar{
		dates:     make(map[string]string),
		recurring: make(map[string]string),
	}
}

// Load читает календарь из файла. Пустой путь дает пустой календарь.
func Load(path string) (*Calendar, error) {
	if path == "" {
		return Empty(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, path, err)
	}

	return Parse(data)
}

// Parse разбирает YAML календаря
func Parse(data []byte) (*Calendar, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	c := Empty()
	for i, h := range f.Holidays {
		if err := c.add(h); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	return c, nil
}

func (c *Calendar) add(h HolidayEntry) error {
	if t, err := time.Parse(recurringFormat, h.Date); err == nil {
		if h.EndDate != "" {
			return fmt.Errorf("%w: recurring holiday %q cannot have end_date", ErrInvalidHoliday, h.Date)
		}
		c.recurring[t.Format(recurringFormat)] = h.Name
		return nil
	}

	start, err := time.Parse(domain.DateFormat, h.Date)
	if err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidHoliday, h.Date)
	}

	end := start
	if h.EndDate != "" {
		end, err = time.Parse(domain.DateFormat, h.EndDate)
		if err != nil {
			return fmt.Errorf("%w: end_date %q", ErrInvalidHoliday, h.EndDate)
		}
		if end.Before(start) {
			return fmt.Errorf("%w: end_date %s before date %s", ErrInvalidHoliday, h.EndDate, h.Date)
		}
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		c.dates[domain.DateKey(d)] = h.Name
	}
	return nil
}

// IsNationalHoliday возвращает true, если дата - государственный праздник
func (c *Calendar) IsNationalHoliday(date time.Time) bool {
	_, ok := c.Name(date)
	return ok
}

// Name возвращает название праздника на дату
func (c *Calendar) Name(date time.Time) (string, bool) {
	if name, ok := c.dates[domain.DateKey(date)]; ok {
		return name, true
	}
	name, ok := c.recurring[date.Format(recurringFormat)]
	return name, ok
}

// Len возвращает количество праздничных записей
func (c *Calendar) Len() int {
	return len(c.dates) + len(c.recurring)
}
