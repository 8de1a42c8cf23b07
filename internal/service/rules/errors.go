package rules

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = errors.New("rules: rule not found")

	// ErrUnknownKind возвращается для неизвестного вида правила
	ErrUnknownKind = errors.New("rules: unknown rule kind")

	// ErrUnsupportedScope возвращается для неподдерживаемой области действия правила
	ErrUnsupportedScope = errors.New("rules: unsupported rule scope")

	// ErrAccessDenied возвращается, когда пользователь меняет чужие правила
	ErrAccessDenied = errors.New("rules: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rules: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rules: internal error")
)
