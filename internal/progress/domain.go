package progress

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// ExpPerNewWord is awarded for every word id not previously in the learned set.
	ExpPerNewWord = 10

	// MaxSessionWords caps a single learn-words batch. Larger batches must be chunked by the caller.
	MaxSessionWords = 50

	// DefaultOffsetMinutes is the fallback UTC offset (UTC+3) used when time_line is absent or malformed.
	DefaultOffsetMinutes = 180

	// DefaultTimeLine is the stored form of the fallback offset.
	DefaultTimeLine = "UTC+3:00"
)

// Int64List is a JSON-encoded list of int64 ids stored in a single column.
// It is treated as a set: duplicates collapse on every write path.
type Int64List []int64

// Value implements driver.Valuer, serializing the list as JSON.
func (l Int64List) Value() (driver.Value, error) {
	if l == nil {
		l = Int64List{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner. A NULL column scans to an empty list.
func (l *Int64List) Scan(value interface{}) error {
	if value == nil {
		*l = Int64List{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into Int64List", value)
	}
}

// GormDataType maps the list to a jsonb column.
func (Int64List) GormDataType() string {
	return "jsonb"
}

// ToSet returns the list as a membership set.
func (l Int64List) ToSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(l))
	for _, id := range l {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is in the list.
func (l Int64List) Contains(id int64) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// User is the persistent per-learner record. The learned and skipped word
// lists are stored as ordered sequences but treated as sets.
type User struct {
	TelegramID       int64      `json:"telegram_id" gorm:"primaryKey;column:telegram_id"`
	Username         string     `json:"username,omitempty" gorm:"type:varchar(32)"`
	FirstName        string     `json:"first_name" gorm:"type:varchar(64);not null"`
	LastName         string     `json:"last_name,omitempty" gorm:"type:varchar(64)"`
	Exp              int        `json:"exp" gorm:"not null;default:0"`
	Awards           string     `json:"awards" gorm:"type:text;default:''"`
	TimeLine         string     `json:"time_line" gorm:"type:varchar(16);not null;default:'UTC+3:00'"`
	WordsPerDay      *int       `json:"words_per_day,omitempty"`
	LearnedWords     Int64List  `json:"eng_learned_words" gorm:"column:eng_learned_words;type:jsonb"`
	SkippedWords     Int64List  `json:"eng_skipped_words" gorm:"column:eng_skipped_words;type:jsonb"`
	LastLearningDate *time.Time `json:"last_learning_date,omitempty" gorm:"type:date"`
	CurrentStreak    int        `json:"current_streak" gorm:"not null;default:0"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser builds a user record with explicit defaults. The learned and
// skipped lists are fresh empty slices, never shared between records.
func NewUser(telegramID int64, username, firstName, lastName string) *User {
	if firstName == "" {
		firstName = "User"
	}
	return &User{
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		Exp:          0,
		TimeLine:     DefaultTimeLine,
		LearnedWords: Int64List{},
		SkippedWords: Int64List{},
	}
}

// DisplayName returns the trimmed concatenation of first and last name,
// or "No name" when both are empty.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return "No name"
	}
	return full
}

// LocalDate computes the user's calendar date at the given UTC instant.
func (u *User) LocalDate(nowUTC time.Time) time.Time {
	return LocalDate(nowUTC, ParseOffset(u.TimeLine))
}

var offsetPattern = regexp.MustCompile(`^UTC([+-])(\d{1,2}):?(\d{0,2})`)

// ParseOffset parses a time_line string of the form UTC±H[H]:?M[M] into a
// signed offset in minutes. Anything that does not match falls back to
// +180 minutes (UTC+3); a missing minutes group counts as 0. The fallback
// is a deliberate policy, not an error path.
func ParseOffset(timeLine string) int {
	match := offsetPattern.FindStringSubmatch(timeLine)
	if match == nil {
		return DefaultOffsetMinutes
	}

	hours, _ := strconv.Atoi(match[2])
	minutes := 0
	if match[3] != "" {
		minutes, _ = strconv.Atoi(match[3])
	}

	offset := hours*60 + minutes
	if match[1] == "-" {
		offset = -offset
	}
	return offset
}

// FormatOffset renders a signed offset in minutes as a UTC±HH:MM string.
func FormatOffset(offsetMinutes int) string {
	sign := "+"
	if offsetMinutes < 0 {
		sign = "-"
		offsetMinutes = -offsetMinutes
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offsetMinutes/60, offsetMinutes%60)
}

// LocalDate shifts a UTC instant by the given offset and truncates to a
// calendar date (midnight UTC carrier value, so dates compare with Equal).
func LocalDate(nowUTC time.Time, offsetMinutes int) time.Time {
	local := nowUTC.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SameDay compares two timestamps by calendar date only.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SessionResult summarizes one applied learning session.
type SessionResult struct {
	LearnedWords  int `json:"learnedWords"`
	NewWords      int `json:"newWords"`
	ExpGained     int `json:"expGained"`
	CurrentStreak int `json:"currentStreak"`
}

// StatsView is the derived, read-only statistics snapshot. LearnedToday is
// a documented approximation: min(words_per_day, total learned) when the
// last session happened on the user's local today, else 0.
type StatsView struct {
	Streak       int `json:"streak"`
	TotalWords   int `json:"totalWords"`
	LearnedToday int `json:"learnedToday"`
	WordsPerDay  int `json:"wordsPerDay"`
}

// Identity carries the fields the identity provider (chat or web-app
// context) supplies for first-time user creation.
type Identity struct {
	UserID    int64  `json:"telegram_id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Username         *string    `json:"username,omitempty"`
	FirstName        *string    `json:"first_name,omitempty"`
	LastName         *string    `json:"last_name,omitempty"`
	TimeLine         *string    `json:"time_line,omitempty"`
	WordsPerDay      *int       `json:"words_per_day,omitempty"`
	LearnedWords     *Int64List `json:"eng_learned_words,omitempty"`
	SkippedWords     *Int64List `json:"eng_skipped_words,omitempty"`
	LastLearningDate *time.Time `json:"last_learning_date,omitempty"`
	CurrentStreak    *int       `json:"current_streak,omitempty"`
	Exp              *int       `json:"exp,omitempty"`
}
