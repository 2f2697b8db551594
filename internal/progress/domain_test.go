package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		name     string
		timeLine string
		expected int
	}{
		{
			name:     "default UTC+3 form",
			timeLine: "UTC+3:00",
			expected: 180,
		},
		{
			name:     "two digit hours with minutes",
			timeLine: "UTC+05:30",
			expected: 330,
		},
		{
			name:     "negative offset",
			timeLine: "UTC-04:00",
			expected: -240,
		},
		{
			name:     "minutes group absent",
			timeLine: "UTC+7",
			expected: 420,
		},
		{
			name:     "colon without minutes",
			timeLine: "UTC+2:",
			expected: 120,
		},
		{
			// Malformed input falls back to +180 minutes (UTC+3). This is a
			// deliberate fallback policy, not a silent bug.
			name:     "garbage falls back to default",
			timeLine: "garbage",
			expected: 180,
		},
		{
			name:     "empty string falls back to default",
			timeLine: "",
			expected: 180,
		},
		{
			name:     "missing sign falls back to default",
			timeLine: "UTC3:00",
			expected: 180,
		},
		{
			name:     "negative half hour",
			timeLine: "UTC-9:30",
			expected: -570,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseOffset(tt.timeLine))
		})
	}
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "UTC+03:00", FormatOffset(180))
	assert.Equal(t, "UTC-04:30", FormatOffset(-270))
	assert.Equal(t, "UTC+00:00", FormatOffset(0))
	assert.Equal(t, "UTC+05:45", FormatOffset(345))
}

func TestLocalDate(t *testing.T) {
	// 23:30 UTC on Jan 1st is already Jan 2nd east of UTC+0:30.
	nowUTC := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)

	east := LocalDate(nowUTC, 180)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), east)

	west := LocalDate(nowUTC, -240)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), west)

	// 00:30 UTC is still the previous day west of UTC-1.
	early := time.Date(2024, 3, 10, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), LocalDate(early, -120))
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		expected string
	}{
		{"first and last", "Anna", "Smith", "Anna Smith"},
		{"first only", "Anna", "", "Anna"},
		{"last only", "", "Smith", "Smith"},
		{"both empty", "", "", "No name"},
		{"whitespace only", " ", " ", "No name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{FirstName: tt.first, LastName: tt.last}
			assert.Equal(t, tt.expected, u.DisplayName())
		})
	}
}

func TestNewUser_Defaults(t *testing.T) {
	u := NewUser(42, "anna", "Anna", "Smith")

	assert.Equal(t, int64(42), u.TelegramID)
	assert.Equal(t, 0, u.Exp)
	assert.Equal(t, 0, u.CurrentStreak)
	assert.Nil(t, u.LastLearningDate)
	assert.Equal(t, DefaultTimeLine, u.TimeLine)
	require.NotNil(t, u.LearnedWords)
	require.NotNil(t, u.SkippedWords)
	assert.Empty(t, u.LearnedWords)
	assert.Empty(t, u.SkippedWords)
}

func TestNewUser_EmptyFirstName(t *testing.T) {
	u := NewUser(7, "", "", "")
	assert.Equal(t, "User", u.FirstName)
}

func TestNewUser_FreshSlices(t *testing.T) {
	a := NewUser(1, "", "A", "")
	b := NewUser(2, "", "B", "")

	a.LearnedWords = append(a.LearnedWords, 10)
	assert.Empty(t, b.LearnedWords)
}

func TestInt64List_ScanValue(t *testing.T) {
	list := Int64List{1, 2, 3}

	value, err := list.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[1,2,3]", string(value.([]byte)))

	var scanned Int64List
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestInt64List_ScanNull(t *testing.T) {
	var list Int64List
	require.NoError(t, list.Scan(nil))
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestInt64List_NilValue(t *testing.T) {
	var list Int64List
	value, err := list.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(value.([]byte)))
}
