package taskrunner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

func TestDurationFromUnits_Minutes(t *testing.T) {
	d, err := DurationFromUnits(15, UnitMinutes)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)
}

func TestDurationFromUnits_Hours(t *testing.T) {
	d, err := DurationFromUnits(3, UnitHours)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, d)
}

func TestDurationFromUnits_Days(t *testing.T) {
	d, err := DurationFromUnits(2, UnitDays)
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, d)
}

func TestDurationFromUnits_Zero(t *testing.T) {
	// Нулевая длительность допустима: задача срабатывает сразу
	d, err := DurationFromUnits(0, UnitMinutes)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)
}

func TestDurationFromUnits_UnsupportedUnit(t *testing.T) {
	_, err := DurationFromUnits(5, "weeks")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation), "Ошибка должна оборачивать ErrValidation")
	assert.Contains(t, err.Error(), "unsupported time unit")
}

func TestDurationFromUnits_NegativeValue(t *testing.T) {
	_, err := DurationFromUnits(-1, UnitHours)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
