package service

import (
	"errors"
	"fmt"
	"time"

	"learnhub_backend/internal/curriculum"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// PlayerService drives a learner through a course's curriculum: it loads the
// ordered item list, applies completion events through the tracker and
// answers lock/unlock queries for the player UI.
type PlayerService struct {
	Courses        *CourseService
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	QuizResultRepo *repository.QuizResultRepository
	DB             *gorm.DB
}

func NewPlayerService(
	courses *CourseService,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	quizResultRepo *repository.QuizResultRepository,
	db *gorm.DB,
) *PlayerService {
	return &PlayerService{
		Courses:        courses,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		QuizResultRepo: quizResultRepo,
		DB:             db,
	}
}

// PlayerItem is one curriculum row annotated for the player UI.
type PlayerItem struct {
	ID        string              `json:"id"`
	Type      curriculum.ItemType `json:"type"`
	Title     string              `json:"title"`
	Completed bool                `json:"completed"`
	Locked    bool                `json:"locked"`
	Current   bool                `json:"current"`
}

type PlayerState struct {
	CourseID     uint               `json:"courseId"`
	Items        []PlayerItem       `json:"items"`
	CurrentIndex int                `json:"currentIndex"`
	Progress     *curriculum.Record `json:"progress"`
}

type QuizOutcome struct {
	Score    int                `json:"score"`
	Total    int                `json:"total"`
	ScorePct int                `json:"scorePct"`
	Passed   bool               `json:"passed"`
	Progress *curriculum.Record `json:"progress"`
}

// buildPlayerState derives the annotated item list from the pure tracker
// functions. Kept free of repository access so it is directly testable.
func buildPlayerState(courseID uint, items []curriculum.Item, rec *curriculum.Record) *PlayerState {
	set := rec.CompletedSet()
	current := curriculum.SelectInitialItem(items, set)

	annotated := make([]PlayerItem, len(items))
	for i, it := range items {
		annotated[i] = PlayerItem{
			ID:        it.ID,
			Type:      it.Type,
			Title:     it.Title,
			Completed: set[it.ID],
			Locked:    curriculum.IsLocked(items, set, i),
			Current:   i == current,
		}
	}
	return &PlayerState{
		CourseID:     courseID,
		Items:        annotated,
		CurrentIndex: current,
		Progress:     rec,
	}
}

func (s *PlayerService) loadCourse(courseID uint) (*model.Course, []curriculum.Item, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !course.Published {
		return nil, nil, util.ErrCourseNotPublished
	}
	items, err := s.Courses.Curriculum(courseID)
	if err != nil {
		return nil, nil, err
	}
	return course, items, nil
}

func (s *PlayerService) requireEnrollment(userID, courseID uint) error {
	enrolled, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return util.ErrNotEnrolled
	}
	return nil
}

func (s *PlayerService) record(userID, courseID uint) (*curriculum.Record, error) {
	row, err := s.ProgressRepo.Find(userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &curriculum.Record{Status: curriculum.StatusNotStarted}, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Record(), nil
}

// GetPlayerState returns the annotated curriculum for the player page.
func (s *PlayerService) GetPlayerState(userID, courseID uint) (*PlayerState, error) {
	_, items, err := s.loadCourse(courseID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEnrollment(userID, courseID); err != nil {
		return nil, err
	}
	rec, err := s.record(userID, courseID)
	if err != nil {
		return nil, err
	}
	return buildPlayerState(courseID, items, rec), nil
}

// completeItem runs one completion event as a single read-modify-write
// transaction so duplicate rapid clicks cannot lose updates.
func (s *PlayerService) completeItem(userID, courseID uint, itemID string, itemType curriculum.ItemType) (*curriculum.Record, error) {
	_, items, err := s.loadCourse(courseID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEnrollment(userID, courseID); err != nil {
		return nil, err
	}

	var rec *curriculum.Record
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		tracker := curriculum.NewTracker(items, repository.NewProgressStore(tx))
		var txErr error
		rec, txErr = tracker.CompleteItem(userID, courseID, itemID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	monitoring.ItemCompletions.WithLabelValues(string(itemType)).Inc()
	return rec, nil
}

// CompleteLesson marks a lesson read. Idempotent.
func (s *PlayerService) CompleteLesson(userID, courseID, lessonID uint) (*curriculum.Record, error) {
	itemID := fmt.Sprintf("%s-%d", curriculum.ItemLesson, lessonID)
	return s.completeItem(userID, courseID, itemID, curriculum.ItemLesson)
}

// gradeQuiz scores a submission against the quiz's questions. Unanswered
// questions count as wrong.
func gradeQuiz(quiz *model.Quiz, answers map[uint]int) (score, total, pct int) {
	total = len(quiz.Questions)
	for _, q := range quiz.Questions {
		if chosen, ok := answers[q.ID]; ok && chosen == q.Answer {
			score++
		}
	}
	if total > 0 {
		pct = 100 * score / total
	}
	return score, total, pct
}

// SubmitQuiz grades an attempt and, on a pass, records the completion event.
// A failed attempt stores the result but leaves progress untouched.
func (s *PlayerService) SubmitQuiz(userID, courseID, quizID uint, answers map[uint]int) (*QuizOutcome, error) {
	_, _, err := s.loadCourse(courseID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEnrollment(userID, courseID); err != nil {
		return nil, err
	}

	quiz, err := s.CourseRepo.FindQuiz(courseID, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, curriculum.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	score, total, pct := gradeQuiz(quiz, answers)
	passed := pct >= quiz.PassScorePct

	result := &model.QuizResult{
		UserID:      userID,
		CourseID:    courseID,
		QuizID:      quizID,
		Score:       score,
		Total:       total,
		ScorePct:    pct,
		Passed:      passed,
		Answers:     model.UintMap(answers),
		CompletedAt: time.Now(),
	}
	if err := s.QuizResultRepo.Create(result); err != nil {
		return nil, err
	}

	outcome := &QuizOutcome{Score: score, Total: total, ScorePct: pct, Passed: passed}
	if passed {
		monitoring.QuizAttempts.WithLabelValues("pass").Inc()
		itemID := fmt.Sprintf("%s-%d", curriculum.ItemQuiz, quizID)
		rec, err := s.completeItem(userID, courseID, itemID, curriculum.ItemQuiz)
		if err != nil {
			return nil, err
		}
		outcome.Progress = rec
	} else {
		monitoring.QuizAttempts.WithLabelValues("fail").Inc()
		rec, err := s.record(userID, courseID)
		if err != nil {
			return nil, err
		}
		outcome.Progress = rec
	}
	return outcome, nil
}

// SelectItem validates direct navigation; locked items are rejected with
// curriculum.ErrItemLocked.
func (s *PlayerService) SelectItem(userID, courseID uint, index int) (*PlayerItem, error) {
	_, items, err := s.loadCourse(courseID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEnrollment(userID, courseID); err != nil {
		return nil, err
	}
	rec, err := s.record(userID, courseID)
	if err != nil {
		return nil, err
	}

	set := rec.CompletedSet()
	idx, err := curriculum.SelectItem(items, set, index)
	if err != nil {
		return nil, err
	}
	it := items[idx]
	return &PlayerItem{
		ID:        it.ID,
		Type:      it.Type,
		Title:     it.Title,
		Completed: set[it.ID],
		Current:   idx == curriculum.SelectInitialItem(items, set),
	}, nil
}

// GetProgress returns the learner's record, an empty NotStarted one before
// the first completion event.
func (s *PlayerService) GetProgress(userID, courseID uint) (*curriculum.Record, error) {
	if _, _, err := s.loadCourse(courseID); err != nil {
		return nil, err
	}
	if err := s.requireEnrollment(userID, courseID); err != nil {
		return nil, err
	}
	return s.record(userID, courseID)
}

// QuizHistory lists the learner's graded attempts in a course.
func (s *PlayerService) QuizHistory(userID, courseID uint) ([]model.QuizResult, error) {
	if err := s.requireEnrollment(userID, courseID); err != nil {
		return nil, err
	}
	return s.QuizResultRepo.ListByUserAndCourse(userID, courseID)
}
