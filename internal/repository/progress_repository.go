package repository

import (
	"errors"
	"time"

	"learnhub_backend/internal/curriculum"
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Find(userID, courseID uint) (*model.CourseProgress, error) {
	var row model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.CourseProgress, error) {
	var rows []model.CourseProgress
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

// ProgressStore adapts a (possibly transactional) gorm handle to the
// tracker's curriculum.Store. Reads take a row lock so a completion event is
// one read-modify-write unit even under duplicate rapid clicks.
type ProgressStore struct {
	db *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

var _ curriculum.Store = (*ProgressStore)(nil)

func (s *ProgressStore) GetProgress(learnerID, courseID uint) (*curriculum.Record, error) {
	var row model.CourseProgress
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ?", learnerID, courseID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, curriculum.ErrNoProgress
	}
	if err != nil {
		return nil, err
	}
	return row.Record(), nil
}

func (s *ProgressStore) SaveProgress(learnerID, courseID uint, rec *curriculum.Record) (*curriculum.Record, error) {
	var row model.CourseProgress
	err := s.db.Where("user_id = ? AND course_id = ?", learnerID, courseID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = model.CourseProgress{
			UserID:    learnerID,
			CourseID:  courseID,
			StartedAt: time.Now(),
		}
	} else if err != nil {
		return nil, err
	}

	row.ApplyRecord(rec)
	if err := s.db.Save(&row).Error; err != nil {
		return nil, err
	}
	return row.Record(), nil
}
