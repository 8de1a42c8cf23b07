package calendar

import "errors"

var (
	// ErrReadFile возвращается при ошибке чтения файла календаря
	ErrReadFile = errors.New("calendar: failed to read file")

	// ErrParse возвращается при ошибке разбора YAML
	ErrParse = errors.New("calendar: failed to parse yaml")

	// ErrInvalidHoliday возвращается для некорректной записи праздника
	ErrInvalidHoliday = errors.New("calendar: invalid holiday entry")
)
