package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBoundsOfDay(t *testing.T) {
	at := time.Date(2026, 8, 29, 15, 4, 5, 0, time.Local)
	begin, end := BoundsOfDay(at)

	require.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local), begin)
	require.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local), end)

	// The interval is half open: midnight belongs to the next day.
	require.False(t, begin.After(at))
	require.True(t, end.After(at))

	beginNext, _ := BoundsOfDay(end)
	require.Equal(t, end, beginNext)
}

func TestDayKey(t *testing.T) {
	at := time.Date(2026, 8, 29, 23, 59, 59, 0, time.Local)
	require.Equal(t, "2026-08-29", DayKey(at))
	require.NotEqual(t, DayKey(at), DayKey(at.Add(time.Second)))
}
