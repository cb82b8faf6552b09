package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	// PassScorePct is the minimum score (percent of questions correct)
	// that counts as passing the quiz.
	PassScorePct int            `gorm:"default:70" json:"passScorePct"`
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID  uint        `gorm:"index;not null" json:"quizId"`
	Text    string      `gorm:"type:text;not null" json:"text"`
	Options StringSlice `gorm:"type:json" json:"options"`
	// Answer is the index into Options; never serialized to learners.
	Answer int `gorm:"not null" json:"-"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizResult stores every graded attempt, passing or not.
// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	UserID      uint      `gorm:"index" json:"userId"`
	CourseID    uint      `gorm:"index" json:"courseId"`
	QuizID      uint      `gorm:"index" json:"quizId"`
	Score       int       `gorm:"not null" json:"score"`
	Total       int       `gorm:"not null" json:"total"`
	ScorePct    int       `gorm:"not null" json:"scorePct"`
	Passed      bool      `gorm:"default:false" json:"passed"`
	Answers     UintMap   `gorm:"type:json" json:"answers"`
	CompletedAt time.Time `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
