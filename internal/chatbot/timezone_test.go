package chatbot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTimeLine(t *testing.T) {
	noon := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		localTime string
		nowUTC    time.Time
		expected  string
	}{
		{
			name:      "three hours ahead",
			localTime: "15:00",
			nowUTC:    noon,
			expected:  "UTC+03:00",
		},
		{
			name:      "four and a half behind",
			localTime: "07:30",
			nowUTC:    noon,
			expected:  "UTC-04:30",
		},
		{
			name:      "same time is UTC",
			localTime: "12:00",
			nowUTC:    noon,
			expected:  "UTC+00:00",
		},
		{
			name:      "stale reply rounds to quarter hour",
			localTime: "15:00",
			nowUTC:    time.Date(2024, 6, 15, 12, 3, 0, 0, time.UTC),
			expected:  "UTC+03:00",
		},
		{
			name:      "reply just before UTC midnight wraps negative",
			localTime: "23:50",
			nowUTC:    time.Date(2024, 6, 15, 0, 10, 0, 0, time.UTC),
			expected:  "UTC-00:15",
		},
		{
			name:      "reply just after UTC midnight wraps positive",
			localTime: "01:00",
			nowUTC:    time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC),
			expected:  "UTC+02:00",
		},
		{
			name:      "half day ahead stays positive",
			localTime: "00:00",
			nowUTC:    noon,
			expected:  "UTC+12:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeLine, err := DeriveTimeLine(tt.localTime, tt.nowUTC)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, timeLine)
		})
	}
}

func TestDeriveTimeLine_Invalid(t *testing.T) {
	noon := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	for _, input := range []string{"", "banana", "25:00", "12:60", "12.30", "12:5"} {
		_, err := DeriveTimeLine(input, noon)
		assert.Error(t, err, "input %q", input)
	}
}

func TestDeriveTimeLine_AcceptsSurroundingWhitespace(t *testing.T) {
	noon := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	timeLine, err := DeriveTimeLine("  15:00 ", noon)
	require.NoError(t, err)
	assert.Equal(t, "UTC+03:00", timeLine)
}
