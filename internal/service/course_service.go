package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"learnhub_backend/internal/curriculum"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const curriculumCacheTTL = 10 * time.Minute

type CourseService struct {
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
	Redis      *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, storage *StorageService, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		Storage:    storage,
		Redis:      rdb,
	}
}

type CourseRequest struct {
	Title              string     `json:"title" binding:"required"`
	Slug               string     `json:"slug" binding:"required"`
	Description        string     `json:"description"`
	CoverURL           string     `json:"coverUrl"`
	PriceCents         int64      `json:"priceCents"`
	ScheduledPublishAt *time.Time `json:"scheduledPublishAt"`
}

type LessonRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

type QuizQuestionRequest struct {
	Text    string   `json:"text" binding:"required"`
	Options []string `json:"options" binding:"required,min=2"`
	Answer  int      `json:"answer"`
}

type QuizRequest struct {
	Title        string                `json:"title" binding:"required"`
	PassScorePct int                   `json:"passScorePct"`
	Questions    []QuizQuestionRequest `json:"questions" binding:"required,min=1"`
}

func (s *CourseService) CreateCourse(orgID, authorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		OrganizationID:     orgID,
		AuthorID:           authorID,
		Title:              req.Title,
		Slug:               req.Slug,
		Description:        req.Description,
		CoverURL:           req.CoverURL,
		PriceCents:         req.PriceCents,
		ScheduledPublishAt: req.ScheduledPublishAt,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

func (s *CourseService) ListPublished(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListPublished(page, limit)
}

func (s *CourseService) ListByOrganization(orgID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByOrganization(orgID)
}

func (s *CourseService) UpdateCourse(id uint, req CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	course.Title = req.Title
	course.Slug = req.Slug
	course.Description = req.Description
	course.CoverURL = req.CoverURL
	course.PriceCents = req.PriceCents
	course.ScheduledPublishAt = req.ScheduledPublishAt
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Publish(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	course.Published = true
	course.ScheduledPublishAt = nil
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	s.invalidateCurriculum(id)
	return course, nil
}

// ProcessScheduledPublishes flips courses whose scheduled time has arrived.
// Called from the app's minute ticker.
func (s *CourseService) ProcessScheduledPublishes() error {
	due, err := s.CourseRepo.FindDuePublishes(time.Now())
	if err != nil {
		return err
	}
	for i := range due {
		course := &due[i]
		course.Published = true
		course.ScheduledPublishAt = nil
		if err := s.CourseRepo.Save(course); err != nil {
			return err
		}
		s.invalidateCurriculum(course.ID)
		logger.Log.Info("course published on schedule",
			zap.Uint("courseID", course.ID), zap.String("slug", course.Slug))
	}
	return nil
}

// AddLesson creates the lesson and appends it to the curriculum sequence.
func (s *CourseService) AddLesson(courseID uint, req LessonRequest) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}
	lesson := &model.Lesson{
		CourseID: courseID,
		Title:    req.Title,
		Body:     req.Body,
	}
	if err := s.CourseRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	entry := &model.CurriculumEntry{
		CourseID: courseID,
		ItemType: curriculum.ItemLesson,
		RefID:    lesson.ID,
		Title:    lesson.Title,
	}
	if err := s.CourseRepo.AppendEntry(entry); err != nil {
		return nil, err
	}
	s.invalidateCurriculum(courseID)
	return lesson, nil
}

// AddQuiz creates the quiz with its questions and appends it to the sequence.
func (s *CourseService) AddQuiz(courseID uint, req QuizRequest) (*model.Quiz, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}
	quiz := &model.Quiz{
		CourseID:     courseID,
		Title:        req.Title,
		PassScorePct: req.PassScorePct,
	}
	if quiz.PassScorePct <= 0 {
		quiz.PassScorePct = 70
	}
	for _, q := range req.Questions {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Text:    q.Text,
			Options: model.StringSlice(q.Options),
			Answer:  q.Answer,
		})
	}
	if err := s.CourseRepo.CreateQuiz(quiz); err != nil {
		return nil, err
	}
	entry := &model.CurriculumEntry{
		CourseID: courseID,
		ItemType: curriculum.ItemQuiz,
		RefID:    quiz.ID,
		Title:    quiz.Title,
	}
	if err := s.CourseRepo.AppendEntry(entry); err != nil {
		return nil, err
	}
	s.invalidateCurriculum(courseID)
	return quiz, nil
}

func (s *CourseService) RemoveEntry(courseID, entryID uint) error {
	if err := s.CourseRepo.DeleteEntry(courseID, entryID); err != nil {
		return err
	}
	s.invalidateCurriculum(courseID)
	return nil
}

func (s *CourseService) ReorderEntries(courseID uint, entryIDs []uint) error {
	if err := s.CourseRepo.ReorderEntries(courseID, entryIDs); err != nil {
		return err
	}
	s.invalidateCurriculum(courseID)
	return nil
}

func (s *CourseService) Entries(courseID uint) ([]model.CurriculumEntry, error) {
	return s.CourseRepo.Entries(courseID)
}

// Curriculum returns the ordered item list for the tracker, served from the
// Redis cache when warm.
func (s *CourseService) Curriculum(courseID uint) ([]curriculum.Item, error) {
	ctx := context.Background()
	key := curriculumCacheKey(courseID)

	if val, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var items []curriculum.Item
		if err := json.Unmarshal([]byte(val), &items); err == nil {
			return items, nil
		}
		// corrupt cache entry, fall through to the database
		s.Redis.Del(ctx, key)
	}

	entries, err := s.CourseRepo.Entries(courseID)
	if err != nil {
		return nil, err
	}
	items := make([]curriculum.Item, 0, len(entries))
	for i := range entries {
		items = append(items, entries[i].Item())
	}

	if data, err := json.Marshal(items); err == nil {
		if err := s.Redis.Set(ctx, key, data, curriculumCacheTTL).Err(); err != nil {
			logger.Log.Warn("curriculum cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

func (s *CourseService) invalidateCurriculum(courseID uint) {
	s.Redis.Del(context.Background(), curriculumCacheKey(courseID))
}

func curriculumCacheKey(courseID uint) string {
	return fmt.Sprintf("course:%d:curriculum", courseID)
}

// UploadLessonVideo stores the uploaded file, probes its duration and saves
// both onto the lesson.
func (s *CourseService) UploadLessonVideo(courseID, lessonID uint, file *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.CourseRepo.FindLesson(courseID, lessonID)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "lesson-video-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if _, err := tmp.ReadFrom(src); err != nil {
		return nil, err
	}

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("lessons/%d/%s%s", lessonID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.Storage.UploadFile(context.Background(), objectName, tmp.Name(), file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = url
	lesson.DurationSec = int(info.Duration)
	if err := s.CourseRepo.SaveLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
