package repository

import (
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("slug = ?", slug).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) ListPublished(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	q := r.DB.Model(&model.Course{}).Where("published = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("id desc").Offset((page - 1) * limit).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByOrganization(orgID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("organization_id = ?", orgID).Order("id desc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

// FindDuePublishes returns unpublished courses whose scheduled publish time
// has passed.
func (r *CourseRepository) FindDuePublishes(now time.Time) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("published = ? AND scheduled_publish_at IS NOT NULL AND scheduled_publish_at <= ?", false, now).
		Find(&courses).Error
	return courses, err
}

// --- curriculum entries ---

func (r *CourseRepository) Entries(courseID uint) ([]model.CurriculumEntry, error) {
	var entries []model.CurriculumEntry
	err := r.DB.Where("course_id = ?", courseID).Order("position").Find(&entries).Error
	return entries, err
}

func (r *CourseRepository) AppendEntry(entry *model.CurriculumEntry) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var max *int
		if err := tx.Model(&model.CurriculumEntry{}).
			Where("course_id = ?", entry.CourseID).
			Select("MAX(position)").Scan(&max).Error; err != nil {
			return err
		}
		entry.Position = 0
		if max != nil {
			entry.Position = *max + 1
		}
		return tx.Create(entry).Error
	})
}

func (r *CourseRepository) DeleteEntry(courseID, entryID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var entry model.CurriculumEntry
		if err := tx.Where("course_id = ?", courseID).First(&entry, entryID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&model.CurriculumEntry{}).
			Where("course_id = ? AND position > ?", courseID, entry.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
}

// ReorderEntries rewrites positions to match the given entry id order.
func (r *CourseRepository) ReorderEntries(courseID uint, entryIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for pos, id := range entryIDs {
			res := tx.Model(&model.CurriculumEntry{}).
				Where("id = ? AND course_id = ?", id, courseID).
				Update("position", pos)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// --- lessons ---

func (r *CourseRepository) CreateLesson(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *CourseRepository) FindLesson(courseID, lessonID uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("course_id = ?", courseID).First(&lesson, lessonID).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *CourseRepository) SaveLesson(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

// --- quizzes ---

func (r *CourseRepository) CreateQuiz(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *CourseRepository) FindQuiz(courseID, quizID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions").Where("course_id = ?", courseID).First(&quiz, quizID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *CourseRepository) SaveQuiz(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}
