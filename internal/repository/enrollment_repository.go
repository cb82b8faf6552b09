package repository

import (
	"errors"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) Exists(userID, courseID uint) (bool, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).Order("enrolled_at desc").Find(&enrollments).Error
	return enrollments, err
}
