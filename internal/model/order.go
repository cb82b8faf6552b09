package model

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Order captures one checkout: computed totals are frozen at quote time so
// later price or coupon edits cannot change what was charged.
// swagger:model Order
type Order struct {
	BaseModel
	UserID        uint        `gorm:"index;not null" json:"userId"`
	Status        OrderStatus `gorm:"type:enum('pending','paid','cancelled');default:'pending'" json:"status"`
	CouponCode    string      `gorm:"size:40" json:"couponCode,omitempty"`
	SubtotalCents int64       `gorm:"not null" json:"subtotalCents"`
	DiscountCents int64       `gorm:"default:0" json:"discountCents"`
	TotalCents    int64       `gorm:"not null" json:"totalCents"`
	// Revenue split of TotalCents between the platform and course owners.
	PlatformFeeCents int64      `gorm:"default:0" json:"platformFeeCents"`
	AuthorShareCents int64      `gorm:"default:0" json:"authorShareCents"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// swagger:model OrderItem
type OrderItem struct {
	BaseModel
	OrderID    uint  `gorm:"index;not null" json:"orderId"`
	CourseID   uint  `gorm:"index;not null" json:"courseId"`
	PriceCents int64 `gorm:"not null" json:"priceCents"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type CouponKind string

const (
	CouponPercent CouponKind = "percent"
	CouponFixed   CouponKind = "fixed"
)

// swagger:model Coupon
type Coupon struct {
	BaseModel
	Code string     `gorm:"size:40;unique;not null" json:"code"`
	Kind CouponKind `gorm:"type:enum('percent','fixed');not null" json:"kind"`
	// PercentOff for percent coupons (1-100), AmountCents for fixed ones.
	PercentOff  int        `gorm:"default:0" json:"percentOff"`
	AmountCents int64      `gorm:"default:0" json:"amountCents"`
	Enabled     bool       `gorm:"default:true" json:"enabled"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// Usable reports whether the coupon can still be applied.
func (c *Coupon) Usable(now time.Time) bool {
	if !c.Enabled {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return true
}
