package domain

import "errors"

var (
	// ErrUnsupportedScope комбинация полей области действия правила не поддерживается
	ErrUnsupportedScope = errors.New("domain: unsupported rule scope")

	// ErrInvalidRule правило нарушает инварианты
	ErrInvalidRule = errors.New("domain: invalid rule")
)
