package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseNotPublished = errors.New("course not published")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrCoursePaid         = errors.New("paid course requires checkout")
	ErrCouponNotUsable    = errors.New("coupon expired or disabled")
	ErrOrderNotPending    = errors.New("order is not pending")
	ErrEmptyOrder         = errors.New("order has no courses")
)
