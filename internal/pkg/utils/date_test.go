package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly_KeepsLocalCalendarDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 23:30 UTC on the 20th is already the 21st in Jakarta.
	instant := time.Date(2024, 7, 20, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-07-20", FormatDate(DateOnly(instant)))
	assert.Equal(t, "2024-07-21", FormatDate(DateOnly(instant.In(jakarta))))
}

func TestToday(t *testing.T) {
	clock := FixedClock{T: time.Date(2024, 7, 21, 9, 15, 0, 0, time.UTC)}

	got := Today(clock, nil)
	assert.Equal(t, time.Date(2024, 7, 21, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-07-21")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 21, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2024/07/21", "2024-13-01", "21-07-2024"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}
