package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(order *model.Order) error {
	return r.DB.Create(order).Error
}

func (r *OrderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.DB.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.Preload("Items").Where("user_id = ?", userID).Order("id desc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Save(order *model.Order) error {
	return r.DB.Save(order).Error
}

type CouponRepository struct {
	DB *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{DB: db}
}

func (r *CouponRepository) FindByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.DB.Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepository) Create(coupon *model.Coupon) error {
	return r.DB.Create(coupon).Error
}

func (r *CouponRepository) Save(coupon *model.Coupon) error {
	return r.DB.Save(coupon).Error
}
