package schedule

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentBlock is a fixed-duration bookable sub-interval of an
// availability window. Blocks are generated exhaustively when the window
// is created and destroyed with it.
type AppointmentBlock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	AvailabilityID uuid.UUID `gorm:"column:availability_id;type:uuid;not null;index"`

	// 1-based, sequential within the window.
	BlockNumber int `gorm:"column:block_number;not null"`

	StartAt  time.Time `gorm:"column:start_at;not null;index"`
	EndAt    time.Time `gorm:"column:end_at;not null"`
	IsBooked bool      `gorm:"column:is_booked;not null;default:false"`
}

func (AppointmentBlock) TableName() string {
	return "scheduling.appointment_blocks"
}

// GenerateBlocks partitions the window into consecutive blocks of exactly
// blockDurationMins minutes, numbered 1..N, all unbooked. It assumes the
// window already passed ValidateBounds, so the span divides evenly and
// the walk lands on EndAt with no partial remainder.
func GenerateBlocks(w *AvailabilityWindow, blockDurationMins int) []AppointmentBlock {
	step := time.Duration(blockDurationMins) * time.Minute
	n := int(w.Duration() / step)

	blocks := make([]AppointmentBlock, 0, n)
	cursor := w.StartAt
	for i := 1; i <= n; i++ {
		blocks = append(blocks, AppointmentBlock{
			AvailabilityID: w.ID,
			BlockNumber:    i,
			StartAt:        cursor,
			EndAt:          cursor.Add(step),
		})
		cursor = cursor.Add(step)
	}
	return blocks
}
