package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string    `gorm:"size:255;not null"`
	Description string
	DueDate     *time.Time
	Completed   bool      `gorm:"default:false"`
	OwnerID     uuid.UUID `gorm:"not null;index"`
	Owner       User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}

// Overdue reports whether the task is pending with a due date strictly in the past.
func (t *Task) Overdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}
