package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Habit types form a closed set; the type decides how a log's value
// payload is interpreted.
const (
	HabitTypeBinary      = "binary"
	HabitTypePrayer      = "prayer"
	HabitTypeDualConfirm = "dual_confirm"
)

// Habit categories.
const (
	CategoryReligious    = "religious"
	CategoryRelationship = "relationship"
	CategoryHealth       = "health"
	CategoryProductivity = "productivity"
)

// Habit is a catalog entry; users are assigned habits through UserHabit.
type Habit struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Slug         string    `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Type         string    `gorm:"size:16;not null;default:'binary'" json:"type"`
	Category     string    `gorm:"size:16;not null;default:'relationship'" json:"category"`
	Icon         string    `gorm:"size:16" json:"icon"`
	PrayerName   *string   `gorm:"size:16" json:"prayer_name"`
	Description  string    `gorm:"size:255" json:"description"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// UserHabit assigns a catalog habit to one user.
type UserHabit struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);index:idx_user_habit,unique;not null" json:"user_id"`
	HabitID   string    `gorm:"type:char(36);index:idx_user_habit,unique;not null" json:"habit_id"`
	Habit     Habit     `gorm:"foreignKey:HabitID" json:"habit"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (uh *UserHabit) BeforeCreate(tx *gorm.DB) error {
	if uh.ID == "" {
		uh.ID = uuid.NewString()
	}
	return nil
}

// HabitValue is the log payload. The shape is a closed tagged union keyed
// by the habit's type: binary and dual_confirm carry only Done, prayer
// may additionally carry OnTime.
type HabitValue struct {
	Done   bool  `json:"done"`
	OnTime *bool `json:"on_time,omitempty"`
}

// Value implements driver.Valuer so gorm stores the payload as JSON.
func (v HabitValue) Value() (driver.Value, error) {
	return json.Marshal(v)
}

// Scan implements sql.Scanner.
func (v *HabitValue) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		return json.Unmarshal(s, v)
	case string:
		return json.Unmarshal([]byte(s), v)
	case nil:
		*v = HabitValue{}
		return nil
	default:
		return fmt.Errorf("unsupported habit value type %T", src)
	}
}

// ValidateFor checks the payload against the habit's declared type.
func (v HabitValue) ValidateFor(habitType string) error {
	switch habitType {
	case HabitTypeBinary, HabitTypeDualConfirm:
		if v.OnTime != nil {
			return errors.New("on_time is only valid for prayer habits")
		}
	case HabitTypePrayer:
		// OnTime optional
	default:
		return fmt.Errorf("unknown habit type %q", habitType)
	}
	return nil
}

// HabitLog is one completion record, at most one per
// (user, habit, sawa day); a repeated write replaces it in place.
type HabitLog struct {
	ID        string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string     `gorm:"type:char(36);index:idx_habit_log_key,unique;not null" json:"user_id"`
	HabitID   string     `gorm:"type:char(36);index:idx_habit_log_key,unique;not null" json:"habit_id"`
	Date      string     `gorm:"type:char(10);index:idx_habit_log_key,unique;index;not null" json:"date"`
	Value     HabitValue `gorm:"type:json" json:"value"`
	LoggedAt  time.Time  `json:"logged_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (l *HabitLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.LoggedAt.IsZero() {
		l.LoggedAt = time.Now()
	}
	return nil
}
