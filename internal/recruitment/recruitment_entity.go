package recruitment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageHired     = "hired"
	StageRejected  = "rejected"
)

// stageOrder drives the forward-only transition rule. Rejected is reachable
// from any non-terminal stage and has no order of its own.
var stageOrder = map[string]int{
	StageApplied:   0,
	StageScreening: 1,
	StageInterview: 2,
	StageOffer:     3,
	StageHired:     4,
}

func IsValidStage(stage string) bool {
	if stage == StageRejected {
		return true
	}
	_, ok := stageOrder[stage]
	return ok
}

func IsTerminalStage(stage string) bool {
	return stage == StageHired || stage == StageRejected
}

// CanMove reports whether a candidate may go from one stage to another.
// Forward moves of exactly one step are allowed, plus rejection from any
// non-terminal stage.
func CanMove(from, to string) bool {
	if IsTerminalStage(from) {
		return false
	}
	if to == StageRejected {
		return true
	}
	fromOrder, ok := stageOrder[from]
	if !ok {
		return false
	}
	toOrder, ok := stageOrder[to]
	if !ok {
		return false
	}
	return toOrder == fromOrder+1
}

type Candidate struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	FullName  string         `gorm:"column:full_name;type:varchar(150);not null"`
	Email     string         `gorm:"column:email;type:varchar(150);not null;uniqueIndex"`
	Phone     string         `gorm:"column:phone;type:varchar(30)"`
	Position  string         `gorm:"column:position;type:varchar(100);not null"`
	Stage     string         `gorm:"column:stage;type:varchar(20);not null;default:applied"`
	ResumeURL *string        `gorm:"column:resume_url;type:text"`
	Notes     *string        `gorm:"column:notes;type:text"`
	HiredAt   *time.Time     `gorm:"column:hired_at;type:timestamptz"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Candidate) TableName() string {
	return "candidates"
}
