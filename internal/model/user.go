package model

import "time"

type UserRole string

const (
	Learner UserRole = "learner"
	Author  UserRole = "author"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:100;unique;not null" json:"email"`
	Password       string    `gorm:"size:100;not null" json:"-"`
	Role           UserRole  `gorm:"type:enum('learner','author','admin');default:'learner'" json:"role"`
	OrganizationID *uint     `gorm:"index" json:"organizationId,omitempty"`
	Avatar         string    `gorm:"size:255" json:"avatar"`
	Disabled       bool      `gorm:"default:false" json:"disabled"`
	LastLogin      time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
