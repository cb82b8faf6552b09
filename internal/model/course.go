package model

import (
	"fmt"
	"time"

	"learnhub_backend/internal/curriculum"
)

// swagger:model Course
type Course struct {
	BaseModel
	OrganizationID uint   `gorm:"index;not null" json:"organizationId"`
	AuthorID       uint   `gorm:"index;not null" json:"authorId"`
	Title          string `gorm:"size:255;not null" json:"title"`
	Slug           string `gorm:"size:255;unique;not null" json:"slug"`
	Description    string `gorm:"type:text" json:"description"`
	CoverURL       string `gorm:"size:255" json:"coverUrl"`
	// PriceCents == 0 means the course is free and enrollment skips checkout.
	PriceCents         int64      `gorm:"default:0" json:"priceCents"`
	Published          bool       `gorm:"default:false" json:"published"`
	ScheduledPublishAt *time.Time `json:"scheduledPublishAt,omitempty"`

	Curriculum []CurriculumEntry `gorm:"foreignKey:CourseID" json:"curriculum,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Body        string `gorm:"type:longtext" json:"body"`
	VideoURL    string `gorm:"size:255" json:"videoUrl"`
	DurationSec int    `gorm:"default:0" json:"durationSec"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// CurriculumEntry pins one lesson or quiz into a course's ordered sequence.
// Position is the presentation order; learners see the list frozen at
// publish time.
// swagger:model CurriculumEntry
type CurriculumEntry struct {
	BaseModel
	CourseID uint                `gorm:"index:idx_course_position;not null" json:"courseId"`
	Position int                 `gorm:"index:idx_course_position;not null" json:"position"`
	ItemType curriculum.ItemType `gorm:"type:enum('lesson','quiz');not null" json:"itemType"`
	RefID    uint                `gorm:"not null" json:"refId"`
	Title    string              `gorm:"size:255;not null" json:"title"`
}

func (CurriculumEntry) TableName() string {
	return "curriculum_entries"
}

// ItemID renders the stable "<type>-<refID>" identifier used in progress
// records.
func (e *CurriculumEntry) ItemID() string {
	return fmt.Sprintf("%s-%d", e.ItemType, e.RefID)
}

// Item converts the entry to the tracker's pure representation.
func (e *CurriculumEntry) Item() curriculum.Item {
	return curriculum.Item{ID: e.ItemID(), Type: e.ItemType, Title: e.Title}
}
