package timeclock

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
)

// Entry is one clock-in/clock-out pair. One row per employee per day;
// the unique index backs the duplicate clock-in conflict.
type Entry struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index:idx_timeclock_employee_date,unique"`
	WorkDate   time.Time      `gorm:"column:work_date;type:date;not null;index:idx_timeclock_employee_date,unique"`
	ClockIn    time.Time      `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut   *time.Time     `gorm:"column:clock_out;type:timestamptz"`
	Status     string         `gorm:"column:status;type:varchar(20);not null;default:present"`
	Notes      *string        `gorm:"column:notes;type:text"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Entry) TableName() string {
	return "timeclock_entries"
}
