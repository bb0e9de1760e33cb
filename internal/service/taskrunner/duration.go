package taskrunner

import (
	"fmt"
	"time"

	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// Поддерживаемые единицы длительности задач
const (
	UnitMinutes = "minutes"
	UnitHours   = "hours"
	UnitDays    = "days"
)

// DurationFromUnits переводит пару (значение, единица) в time.Duration.
// Любая другая единица - ошибка "unsupported time unit".
func DurationFromUnits(value int, unit string) (time.Duration, error) {
	if value < 0 {
		return 0, fmt.Errorf("%w: duration value must not be negative", apperrors.ErrValidation)
	}
	switch unit {
	case UnitMinutes:
		return time.Duration(value) * time.Minute, nil
	case UnitHours:
		return time.Duration(value) * time.Hour, nil
	case UnitDays:
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("%w: unsupported time unit %q", apperrors.ErrValidation, unit)
	}
}
