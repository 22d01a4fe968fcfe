package settings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// KeyBlockDuration is the setting that controls how availability windows
// are partitioned. Read once per availability-creation call; changing it
// never touches previously generated blocks.
const KeyBlockDuration = "appointment_block_duration_minutes"

// DefaultBlockDurationMins applies when the setting row is absent.
const DefaultBlockDurationMins = 60

var ErrSettingNotFound = errors.New("setting not found")

// Setting is a system-wide key/value row.
type Setting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Key         string `gorm:"column:setting_key;type:varchar(100);uniqueIndex;not null"`
	Value       string `gorm:"column:setting_value;type:text;not null"`
	Description string `gorm:"column:description;type:text"`
}

func (Setting) TableName() string {
	return "scheduling.system_settings"
}

type Store interface {
	// Get returns ErrSettingNotFound when the key has never been set.
	Get(ctx context.Context, key string) (*Setting, error)
	List(ctx context.Context) ([]*Setting, error)
	// Upsert creates the row or overwrites its value.
	Upsert(ctx context.Context, key, value, description string) (*Setting, error)
}
