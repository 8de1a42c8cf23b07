package apply_shift_settings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_shift_settings: invalid input data")

	// ErrAccessDenied возвращается, когда смены меняет не сам мастер
	ErrAccessDenied = errors.New("apply_shift_settings: access denied")

	// ErrConflicts возвращается, когда новые смены конфликтуют с бронями
	ErrConflicts = errors.New("apply_shift_settings: shift settings conflict with reservations")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_shift_settings: internal error")
)

// ConflictError ошибка с перечнем конфликтующих броней
type ConflictError struct {
	Conflicts []domain.ShiftConflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %d conflicts", ErrConflicts.Error(), len(e.Conflicts))
}

// Is позволяет сравнивать с ErrConflicts через errors.Is
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflicts
}
