package models

import (
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func (d Direction) Valid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// SwipeRecord is one swipe of its owner on a target profile. Records are
// never updated; a user holds at most one per target and day.
type SwipeRecord struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_swipe_once_per_day,priority:1"`
	TargetID  uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_swipe_once_per_day,priority:2"`
	Direction Direction `json:"direction" gorm:"type:varchar(5);not null"`
	Date      string    `json:"date" gorm:"type:char(10);not null;uniqueIndex:idx_swipe_once_per_day,priority:3"` // YYYY-MM-DD, UTC
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
