package apply_shift_settings

import (
	"context"

	applyShiftSettings "github.com/m04kA/SMC-ScheduleService/internal/usecase/apply_shift_settings"
)

type ApplyShiftSettingsUseCase interface {
	Execute(ctx context.Context, req *applyShiftSettings.Request) (*applyShiftSettings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
