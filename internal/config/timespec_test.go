package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wurstmineberg/bitbar-server-status/internal/config"
)

func TestParseTimespec(t *testing.T) {
	// A wednesday.
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	testCases := []struct {
		args []string
		want time.Time
	}{
		{args: []string{"2h30m"}, want: now.Add(time.Hour*2 + time.Minute*30)},
		{args: []string{"2024-06-01T08:00:00Z"}, want: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)},
		{args: []string{"18:00"}, want: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)},
		{args: []string{"9:15"}, want: time.Date(2024, 5, 2, 9, 15, 0, 0, time.UTC)},
		{args: []string{"tomorrow"}, want: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		{args: []string{"Tomorrow", "7:00"}, want: time.Date(2024, 5, 2, 7, 0, 0, 0, time.UTC)},
		{args: []string{"friday"}, want: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)},
		{args: []string{"wednesday", "18:00"}, want: time.Date(2024, 5, 8, 18, 0, 0, 0, time.UTC)},
		{args: []string{"monday 6:00"}, want: time.Date(2024, 5, 6, 6, 0, 0, 0, time.UTC)},
	}

	for _, testCase := range testCases {
		got, errParse := config.ParseTimespec(testCase.args, now)
		require.NoError(t, errParse, testCase.args)
		require.True(t, testCase.want.Equal(got), "%v: want %s got %s", testCase.args, testCase.want, got)
	}
}

func TestParseTimespecErrors(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	_, errEmpty := config.ParseTimespec(nil, now)
	require.ErrorIs(t, errEmpty, config.ErrEmptyTimespec)

	_, errPast := config.ParseTimespec([]string{"2020-01-01T00:00:00Z"}, now)
	require.ErrorIs(t, errPast, config.ErrEmptyTimespec)

	_, errNegative := config.ParseTimespec([]string{"-1h"}, now)
	require.ErrorIs(t, errNegative, config.ErrEmptyTimespec)

	for _, args := range [][]string{{"someday"}, {"friday", "25:00"}, {"next", "friday", "at", "noon"}} {
		_, errParse := config.ParseTimespec(args, now)
		require.ErrorIs(t, errParse, config.ErrInvalidTimespec, args)
	}
}
