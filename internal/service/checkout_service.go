package service

import (
	"errors"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// CheckoutService computes order totals (subtotal, coupon discount, platform
// revenue share) and turns paid orders into enrollments. Payment capture
// itself is an external collaborator and not modeled here.
type CheckoutService struct {
	CourseRepo     *repository.CourseRepository
	CouponRepo     *repository.CouponRepository
	OrderRepo      *repository.OrderRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Cfg            *config.Config
	DB             *gorm.DB
}

func NewCheckoutService(
	courseRepo *repository.CourseRepository,
	couponRepo *repository.CouponRepository,
	orderRepo *repository.OrderRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	cfg *config.Config,
	db *gorm.DB,
) *CheckoutService {
	return &CheckoutService{
		CourseRepo:     courseRepo,
		CouponRepo:     couponRepo,
		OrderRepo:      orderRepo,
		EnrollmentRepo: enrollmentRepo,
		Cfg:            cfg,
		DB:             db,
	}
}

type QuoteLine struct {
	CourseID   uint   `json:"courseId"`
	Title      string `json:"title"`
	PriceCents int64  `json:"priceCents"`
}

type Quote struct {
	Lines            []QuoteLine `json:"lines"`
	CouponCode       string      `json:"couponCode,omitempty"`
	SubtotalCents    int64       `json:"subtotalCents"`
	DiscountCents    int64       `json:"discountCents"`
	TotalCents       int64       `json:"totalCents"`
	PlatformFeeCents int64       `json:"platformFeeCents"`
	AuthorShareCents int64       `json:"authorShareCents"`
}

// computeQuote is the pure pricing rule: subtotal over course prices, the
// coupon applied to the subtotal (fixed coupons never push the total below
// zero), then the platform fee carved out of the discounted total. The
// author share is the remainder so the split always sums exactly.
func computeQuote(courses []model.Course, coupon *model.Coupon, platformFeePct int) *Quote {
	q := &Quote{}
	for _, c := range courses {
		q.Lines = append(q.Lines, QuoteLine{CourseID: c.ID, Title: c.Title, PriceCents: c.PriceCents})
		q.SubtotalCents += c.PriceCents
	}

	if coupon != nil {
		q.CouponCode = coupon.Code
		switch coupon.Kind {
		case model.CouponPercent:
			q.DiscountCents = q.SubtotalCents * int64(coupon.PercentOff) / 100
		case model.CouponFixed:
			q.DiscountCents = coupon.AmountCents
		}
		if q.DiscountCents > q.SubtotalCents {
			q.DiscountCents = q.SubtotalCents
		}
	}

	q.TotalCents = q.SubtotalCents - q.DiscountCents
	q.PlatformFeeCents = q.TotalCents * int64(platformFeePct) / 100
	q.AuthorShareCents = q.TotalCents - q.PlatformFeeCents
	return q
}

func (s *CheckoutService) loadCourses(courseIDs []uint) ([]model.Course, error) {
	if len(courseIDs) == 0 {
		return nil, util.ErrEmptyOrder
	}
	courses := make([]model.Course, 0, len(courseIDs))
	for _, id := range courseIDs {
		course, err := s.CourseRepo.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		if err != nil {
			return nil, err
		}
		if !course.Published {
			return nil, util.ErrCourseNotPublished
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

func (s *CheckoutService) loadCoupon(code string) (*model.Coupon, error) {
	if code == "" {
		return nil, nil
	}
	coupon, err := s.CouponRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCouponNotUsable
	}
	if err != nil {
		return nil, err
	}
	if !coupon.Usable(time.Now()) {
		return nil, util.ErrCouponNotUsable
	}
	return coupon, nil
}

// Quote prices a basket without creating anything.
func (s *CheckoutService) Quote(courseIDs []uint, couponCode string) (*Quote, error) {
	courses, err := s.loadCourses(courseIDs)
	if err != nil {
		return nil, err
	}
	coupon, err := s.loadCoupon(couponCode)
	if err != nil {
		return nil, err
	}
	return computeQuote(courses, coupon, s.Cfg.Checkout.PlatformFeePct), nil
}

// CreateOrder freezes a quote into a pending order.
func (s *CheckoutService) CreateOrder(userID uint, courseIDs []uint, couponCode string) (*model.Order, error) {
	courses, err := s.loadCourses(courseIDs)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		enrolled, err := s.EnrollmentRepo.Exists(userID, c.ID)
		if err != nil {
			return nil, err
		}
		if enrolled {
			return nil, util.ErrAlreadyEnrolled
		}
	}
	coupon, err := s.loadCoupon(couponCode)
	if err != nil {
		return nil, err
	}

	quote := computeQuote(courses, coupon, s.Cfg.Checkout.PlatformFeePct)
	order := &model.Order{
		UserID:           userID,
		Status:           model.OrderPending,
		CouponCode:       quote.CouponCode,
		SubtotalCents:    quote.SubtotalCents,
		DiscountCents:    quote.DiscountCents,
		TotalCents:       quote.TotalCents,
		PlatformFeeCents: quote.PlatformFeeCents,
		AuthorShareCents: quote.AuthorShareCents,
	}
	for _, line := range quote.Lines {
		order.Items = append(order.Items, model.OrderItem{
			CourseID:   line.CourseID,
			PriceCents: line.PriceCents,
		})
	}
	if err := s.OrderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ConfirmOrder marks a pending order paid and creates its enrollments in one
// transaction.
func (s *CheckoutService) ConfirmOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.OrderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if order.Status != model.OrderPending {
		return nil, util.ErrOrderNotPending
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		order.Status = model.OrderPaid
		order.PaidAt = &now
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			enrollment := &model.Enrollment{
				UserID:     order.UserID,
				CourseID:   item.CourseID,
				OrderID:    &order.ID,
				EnrolledAt: now,
			}
			if err := tx.Create(enrollment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *CheckoutService) CancelOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.OrderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if order.Status != model.OrderPending {
		return nil, util.ErrOrderNotPending
	}
	order.Status = model.OrderCancelled
	if err := s.OrderRepo.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// EnrollFree enrolls directly into a zero-price course, bypassing checkout.
func (s *CheckoutService) EnrollFree(userID, courseID uint) (*model.Enrollment, error) {
	courses, err := s.loadCourses([]uint{courseID})
	if err != nil {
		return nil, err
	}
	if courses[0].PriceCents > 0 {
		return nil, util.ErrCoursePaid
	}
	enrolled, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, util.ErrAlreadyEnrolled
	}
	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *CheckoutService) MyOrders(userID uint) ([]model.Order, error) {
	return s.OrderRepo.ListByUser(userID)
}

func (s *CheckoutService) MyEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}
