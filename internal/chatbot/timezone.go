package chatbot

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"lingobot-api/internal/progress"
)

var localTimePattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*$`)

// minutesPerDay is one full wall-clock cycle.
const minutesPerDay = 24 * 60

// DeriveTimeLine infers a user's UTC offset from the wall-clock time they
// report. The difference between the reported local time and UTC now is
// normalized into (-12h, +12h] and rounded to the nearest 15 minutes, since
// real-world offsets are quarter-hour multiples and the user's reply is a
// minute or two stale by the time it arrives.
func DeriveTimeLine(localTime string, nowUTC time.Time) (string, error) {
	match := localTimePattern.FindStringSubmatch(localTime)
	if match == nil {
		return "", fmt.Errorf("local time must look like HH:MM, got %q", localTime)
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	if hours > 23 || minutes > 59 {
		return "", fmt.Errorf("local time out of range: %q", localTime)
	}

	utc := nowUTC.UTC()
	offset := (hours*60 + minutes) - (utc.Hour()*60 + utc.Minute())

	// Wrap into (-12h, +12h]: a 23:50 reply against 00:10 UTC means -20
	// minutes, not +23h40m.
	for offset > minutesPerDay/2 {
		offset -= minutesPerDay
	}
	for offset <= -minutesPerDay/2 {
		offset += minutesPerDay
	}

	offset = roundToQuarterHour(offset)
	return progress.FormatOffset(offset), nil
}

func roundToQuarterHour(minutes int) int {
	const step = 15
	if minutes >= 0 {
		return (minutes + step/2) / step * step
	}
	return -((-minutes + step/2) / step * step)
}
