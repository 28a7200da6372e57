package quiz

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core"
)

type Question struct {
	ID            string   `json:"id" yaml:"id" validate:"required,notblank"`
	Question      string   `json:"question" yaml:"question" validate:"required,notblank"`
	QuestionHi    string   `json:"question_hi" yaml:"question_hi"`
	Options       []string `json:"options" yaml:"options" validate:"min=2,dive,required"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer" validate:"required"`
}

type Quiz struct {
	ID              string     `json:"id" yaml:"id"`
	TopicID         string     `json:"topic_id" yaml:"topic_id" validate:"required"`
	Title           string     `json:"title" yaml:"title" validate:"required,notblank"`
	TitleHi         string     `json:"title_hi" yaml:"title_hi"`
	DurationMinutes int        `json:"duration_minutes" yaml:"duration_minutes" validate:"gte=0"`
	Questions       []Question `json:"questions" yaml:"questions" validate:"min=1,dive"`
}

// CheckAnswers verifies that every question's correct answer is one of its options
// and that question IDs are unique within the quiz.
func (q Quiz) CheckAnswers() error {
	var flds []core.FieldError
	seen := make(map[string]bool, len(q.Questions))
	for i, qn := range q.Questions {
		if seen[qn.ID] {
			flds = append(flds, core.FieldError{
				Field: fmt.Sprintf("questions[%d].id", i),
				Error: fmt.Sprintf("duplicate question id %q", qn.ID),
			})
		}
		seen[qn.ID] = true

		if !contains(qn.Options, qn.CorrectAnswer) {
			flds = append(flds, core.FieldError{
				Field: fmt.Sprintf("questions[%d].correct_answer", i),
				Error: "correct answer must be one of the options",
			})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(errors.New("invalid quiz"), flds...)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Result is one scored attempt. Results are append-only.
type Result struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	QuizID      string    `json:"quiz_id" db:"quiz_id"`
	TopicID     string    `json:"topic_id" db:"topic_id"`
	Score       float64   `json:"score" db:"score"`
	Correct     int       `json:"correct" db:"correct"`
	Total       int       `json:"total" db:"total"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"` // UTC
}

// Submission is a candidate's answer set: question ID -> chosen option.
type Submission struct {
	QuizID  string            `json:"quiz_id" validate:"required"`
	TopicID string            `json:"topic_id"`
	Answers map[string]string `json:"answers"`
}

func (s *Submission) Validate(validate *validator.Validate) error {
	s.QuizID = core.CleanString(s.QuizID)
	s.TopicID = core.CleanString(s.TopicID)
	return errors.Wrap(validate.Struct(s), "validating Submission")
}

type Score struct {
	Score   float64 `json:"score"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
}
