package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizResultRepository) ListByUserAndCourse(userID, courseID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("id desc").Find(&results).Error
	return results, err
}
