package domain

import "time"

// QuizQuestion is a single multiple-choice question attached to a course.
// CorrectAnswer is the index (0-3) into Options.
type QuizQuestion struct {
	QuestionID    string   `json:"questionID"`
	CourseID      string   `json:"courseID"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"-"`
}

// QuizAnswer records one answered question within an attempt.
type QuizAnswer struct {
	QuestionID     string `json:"questionID"`
	SelectedAnswer int    `json:"selectedAnswer"`
	Correct        bool   `json:"correct"`
}

// QuizAttempt is one graded pass over a course quiz.
type QuizAttempt struct {
	AttemptID      string       `json:"attemptID"`
	UserID         string       `json:"userID"`
	CourseID       string       `json:"courseID"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	Passed         bool         `json:"passed"`
	Answers        []QuizAnswer `json:"answers"`
	CreatedAt      time.Time    `json:"createdAt"`
}
