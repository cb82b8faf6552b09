package model

// Organization is the brand/company that owns courses. Every author belongs
// to exactly one organization; learners belong to none.
// swagger:model Organization
type Organization struct {
	BaseModel
	Name        string `gorm:"size:120;not null" json:"name"`
	Slug        string `gorm:"size:120;unique;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"size:255" json:"logoUrl"`
	OwnerID     uint   `gorm:"index" json:"ownerId"`
	// RevenueSharePct overrides the platform default split when non-zero.
	RevenueSharePct int `gorm:"default:0" json:"revenueSharePct"`
}

func (Organization) TableName() string {
	return "organizations"
}
