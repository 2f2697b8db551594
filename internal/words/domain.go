package words

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	// MaxBatchSize caps a single by-ids lookup.
	MaxBatchSize = 100

	// MaxRandomSize caps a single random sample request.
	MaxRandomSize = 100
)

// SoundMap stores per-voice audio clips as base64 payloads keyed by voice
// name, serialized into a single jsonb column.
type SoundMap map[string]string

// Value implements driver.Valuer.
func (m SoundMap) Value() (driver.Value, error) {
	if m == nil {
		m = SoundMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner. A NULL column scans to an empty map.
func (m *SoundMap) Scan(value interface{}) error {
	if value == nil {
		*m = SoundMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into SoundMap", value)
	}
}

// GormDataType maps the sound map to a jsonb column.
func (SoundMap) GormDataType() string {
	return "jsonb"
}

// Word is one catalog entry. Image and sound payloads travel inline as
// base64 so clients need no second fetch.
type Word struct {
	ID         int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Eng        string   `json:"eng" gorm:"type:varchar(128);not null;index:idx_eng_words_eng"`
	Rus        string   `json:"rus" gorm:"type:varchar(128);not null"`
	Transcript string   `json:"transcript,omitempty" gorm:"type:varchar(128)"`
	ImageData  string   `json:"image_data,omitempty" gorm:"type:text"`
	SoundData  SoundMap `json:"sound_data,omitempty" gorm:"type:jsonb"`
}

// TableName returns the table name for the Word model
func (Word) TableName() string {
	return "eng_words"
}
