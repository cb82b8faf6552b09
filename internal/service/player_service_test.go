package service

import (
	"testing"

	"learnhub_backend/internal/curriculum"
	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playerItems() []curriculum.Item {
	return []curriculum.Item{
		{ID: "lesson-1", Type: curriculum.ItemLesson, Title: "Basics"},
		{ID: "quiz-2", Type: curriculum.ItemQuiz, Title: "Basics check"},
		{ID: "lesson-3", Type: curriculum.ItemLesson, Title: "Advanced"},
	}
}

func TestBuildPlayerStateFreshLearner(t *testing.T) {
	rec := &curriculum.Record{Status: curriculum.StatusNotStarted}
	state := buildPlayerState(42, playerItems(), rec)

	require.Len(t, state.Items, 3)
	assert.Equal(t, 0, state.CurrentIndex)
	assert.True(t, state.Items[0].Current)
	assert.False(t, state.Items[0].Locked)
	assert.True(t, state.Items[1].Locked)
	assert.True(t, state.Items[2].Locked)
}

func TestBuildPlayerStateMidCourse(t *testing.T) {
	rec := &curriculum.Record{
		CompletedItemIDs: []string{"lesson-1"},
		Status:           curriculum.StatusInProgress,
		PercentComplete:  33,
	}
	state := buildPlayerState(42, playerItems(), rec)

	assert.Equal(t, 1, state.CurrentIndex)
	assert.True(t, state.Items[0].Completed)
	assert.False(t, state.Items[0].Locked, "completed items stay open for review")
	assert.True(t, state.Items[1].Current)
	assert.False(t, state.Items[1].Locked)
	assert.True(t, state.Items[2].Locked)
}

func TestBuildPlayerStateCompletedCourse(t *testing.T) {
	rec := &curriculum.Record{
		CompletedItemIDs: []string{"lesson-1", "quiz-2", "lesson-3"},
		Status:           curriculum.StatusCompleted,
		PercentComplete:  100,
	}
	state := buildPlayerState(42, playerItems(), rec)

	assert.Equal(t, 0, state.CurrentIndex, "review mode starts at the top")
	for _, it := range state.Items {
		assert.True(t, it.Completed)
		assert.False(t, it.Locked)
	}
}

func quizWithAnswers() *model.Quiz {
	q1 := model.QuizQuestion{Text: "q1", Options: model.StringSlice{"a", "b"}, Answer: 1}
	q1.ID = 1
	q2 := model.QuizQuestion{Text: "q2", Options: model.StringSlice{"a", "b", "c"}, Answer: 2}
	q2.ID = 2
	q3 := model.QuizQuestion{Text: "q3", Options: model.StringSlice{"a", "b"}, Answer: 0}
	q3.ID = 3
	return &model.Quiz{Title: "check", PassScorePct: 70, Questions: []model.QuizQuestion{q1, q2, q3}}
}

func TestGradeQuiz(t *testing.T) {
	quiz := quizWithAnswers()

	score, total, pct := gradeQuiz(quiz, map[uint]int{1: 1, 2: 2, 3: 0})
	assert.Equal(t, 3, score)
	assert.Equal(t, 3, total)
	assert.Equal(t, 100, pct)

	score, total, pct = gradeQuiz(quiz, map[uint]int{1: 1, 2: 0})
	assert.Equal(t, 1, score)
	assert.Equal(t, 3, total)
	assert.Equal(t, 33, pct)

	// unanswered counts as wrong, unknown question ids are ignored
	score, _, pct = gradeQuiz(quiz, map[uint]int{99: 1})
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, pct)
}

func TestGradeQuizPassThreshold(t *testing.T) {
	quiz := quizWithAnswers()

	_, _, pct := gradeQuiz(quiz, map[uint]int{1: 1, 2: 2})
	assert.Equal(t, 66, pct)
	assert.Less(t, pct, quiz.PassScorePct, "two of three misses a 70% bar")

	_, _, pct = gradeQuiz(quiz, map[uint]int{1: 1, 2: 2, 3: 0})
	assert.GreaterOrEqual(t, pct, quiz.PassScorePct)
}
