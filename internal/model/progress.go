package model

import (
	"time"

	"learnhub_backend/internal/curriculum"
)

// CourseProgress is the per-learner, per-course progress row. One row per
// enrollment, created on first completion event, never deleted while the
// enrollment exists.
// swagger:model CourseProgress
type CourseProgress struct {
	BaseModel
	UserID           uint              `gorm:"index:idx_user_course,unique;not null" json:"userId"`
	CourseID         uint              `gorm:"index:idx_user_course,unique;not null" json:"courseId"`
	CompletedItemIDs StringSlice       `gorm:"type:json" json:"completedItemIds"`
	Status           curriculum.Status `gorm:"size:20;default:'NotStarted'" json:"status"`
	PercentComplete  int               `gorm:"default:0" json:"percentComplete"`
	StartedAt        time.Time         `json:"startedAt"`
	CompletedAt      *time.Time        `json:"completedAt,omitempty"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

// Record converts the row to the tracker's pure representation.
func (p *CourseProgress) Record() *curriculum.Record {
	return &curriculum.Record{
		CompletedItemIDs: append([]string(nil), p.CompletedItemIDs...),
		Status:           p.Status,
		PercentComplete:  p.PercentComplete,
	}
}

// ApplyRecord copies tracker output back onto the row and maintains the
// completion timestamp.
func (p *CourseProgress) ApplyRecord(rec *curriculum.Record) {
	p.CompletedItemIDs = StringSlice(rec.CompletedItemIDs)
	p.Status = rec.Status
	p.PercentComplete = rec.PercentComplete
	if rec.Status == curriculum.StatusCompleted && p.CompletedAt == nil {
		now := time.Now()
		p.CompletedAt = &now
	}
}
