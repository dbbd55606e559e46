package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultRuleParamsValidate(t *testing.T) {
	require.NoError(t, DefaultRuleParams().Validate())
}

func TestValidateCatchesBadBands(t *testing.T) {
	p := DefaultRuleParams()
	p.VixMin, p.VixMax = -0.05, -0.10
	require.Error(t, p.Validate())

	p = DefaultRuleParams()
	p.VolumeWindow = 1
	require.Error(t, p.Validate())

	p = DefaultRuleParams()
	p.AllowedDays = []int{7}
	require.Error(t, p.Validate())

	p = DefaultRuleParams()
	p.StartingCapital = 0
	require.Error(t, p.Validate())
}

func TestDayAllowed(t *testing.T) {
	p := DefaultRuleParams()
	for d := 0; d <= 3; d++ {
		require.True(t, p.DayAllowed(d))
	}
	for d := 4; d <= 6; d++ {
		require.False(t, p.DayAllowed(d))
	}
}

func TestWeekdayIsMondayBased(t *testing.T) {
	// 2024-01-01 is a Monday, 2024-01-07 a Sunday.
	for i := 0; i < 7; i++ {
		day := time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC)
		require.Equal(t, i, Weekday(day))
	}
}

func TestResultFromPnL(t *testing.T) {
	require.Equal(t, ResultWin, ResultFromPnL(0.01))
	require.Equal(t, ResultLoss, ResultFromPnL(0))
	require.Equal(t, ResultLoss, ResultFromPnL(-5))
}
