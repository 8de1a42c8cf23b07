package health

import "context"

// Checker проверяет доступность зависимости
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CheckFunc адаптер функции к Checker
type CheckFunc struct {
	DependencyName string
	Fn             func(ctx context.Context) error
}

func (c CheckFunc) Name() string {
	return c.DependencyName
}

func (c CheckFunc) Check(ctx context.Context) error {
	return c.Fn(ctx)
}
