package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID     uint      `gorm:"index:idx_enroll_user_course,unique;not null" json:"userId"`
	CourseID   uint      `gorm:"index:idx_enroll_user_course,unique;not null" json:"courseId"`
	OrderID    *uint     `gorm:"index" json:"orderId,omitempty"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
