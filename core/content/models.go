package content

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core"
)

type Class struct {
	ID            string `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	NameHi        string `json:"name_hi" db:"name_hi"`
	Description   string `json:"description" db:"description"`
	DescriptionHi string `json:"description_hi" db:"description_hi"`
	ClassNumber   int    `json:"class_number" db:"class_number"`
}

type Subject struct {
	ID            string `json:"id" db:"id"`
	ClassID       string `json:"class_id" db:"class_id"`
	Name          string `json:"name" db:"name"`
	NameHi        string `json:"name_hi" db:"name_hi"`
	Icon          string `json:"icon" db:"icon"`
	Description   string `json:"description" db:"description"`
	DescriptionHi string `json:"description_hi" db:"description_hi"`
}

type Topic struct {
	ID              string    `json:"id"`
	ClassID         string    `json:"class_id"`
	SubjectID       string    `json:"subject_id"`
	Title           string    `json:"title"`
	TitleHi         string    `json:"title_hi"`
	Content         string    `json:"content"`
	ContentHi       string    `json:"content_hi"`
	Formulas        []string  `json:"formulas"`
	Diagrams        []string  `json:"diagrams"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"` // UTC
}

// TopicSummary is a Topic without its bodies, as listed under a subject.
type TopicSummary struct {
	ID              string    `json:"id" db:"id"`
	ClassID         string    `json:"class_id" db:"class_id"`
	SubjectID       string    `json:"subject_id" db:"subject_id"`
	Title           string    `json:"title" db:"title"`
	TitleHi         string    `json:"title_hi" db:"title_hi"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

func (t Topic) Summary() TopicSummary {
	return TopicSummary{
		ID:              t.ID,
		ClassID:         t.ClassID,
		SubjectID:       t.SubjectID,
		Title:           t.Title,
		TitleHi:         t.TitleHi,
		DurationMinutes: t.DurationMinutes,
		CreatedAt:       t.CreatedAt,
	}
}

type Book struct {
	ID            string    `json:"id" db:"id"`
	ClassID       string    `json:"class_id" db:"class_id"`
	Title         string    `json:"title" db:"title"`
	TitleHi       string    `json:"title_hi" db:"title_hi"`
	Description   string    `json:"description" db:"description"`
	DescriptionHi string    `json:"description_hi" db:"description_hi"`
	Price         float64   `json:"price" db:"price"`
	Image         string    `json:"image" db:"image"`
	Pages         int       `json:"pages" db:"pages"`
	Author        string    `json:"author" db:"author"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"` // UTC
}

type MockTest struct {
	ID              string `json:"id" db:"id"`
	ClassID         string `json:"class_id" db:"class_id"`
	Title           string `json:"title" db:"title"`
	TitleHi         string `json:"title_hi" db:"title_hi"`
	Subject         string `json:"subject" db:"subject"`
	DurationMinutes int    `json:"duration_minutes" db:"duration_minutes"`
	TotalMarks      int    `json:"total_marks" db:"total_marks"`
	QuestionsCount  int    `json:"questions_count" db:"questions_count"`
}

type Bookmark struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	TopicID   string    `json:"topic_id" db:"topic_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewTopic contains information needed to create a Topic.
type NewTopic struct {
	ClassID         string   `json:"class_id" validate:"required"`
	SubjectID       string   `json:"subject_id" validate:"required"`
	Title           string   `json:"title" validate:"required,notblank"`
	TitleHi         string   `json:"title_hi"`
	Content         string   `json:"content" validate:"required"`
	ContentHi       string   `json:"content_hi"`
	Formulas        []string `json:"formulas"`
	Diagrams        []string `json:"diagrams"`
	DurationMinutes int      `json:"duration_minutes" validate:"gte=0"`
}

func (nt *NewTopic) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.TitleHi = core.CleanString(nt.TitleHi)
	return errors.Wrap(validate.Struct(nt), "validating NewTopic")
}

// NewBook contains information needed to create a Book.
type NewBook struct {
	ClassID       string  `json:"class_id"`
	Title         string  `json:"title" validate:"required,notblank"`
	TitleHi       string  `json:"title_hi"`
	Description   string  `json:"description"`
	DescriptionHi string  `json:"description_hi"`
	Price         float64 `json:"price" validate:"gte=0"`
	Image         string  `json:"image" validate:"omitempty,url"`
	Pages         int     `json:"pages" validate:"gte=0"`
	Author        string  `json:"author"`
}

func (nb *NewBook) Validate(validate *validator.Validate) error {
	nb.Title = core.CleanString(nb.Title)
	nb.Author = core.CleanString(nb.Author)
	return errors.Wrap(validate.Struct(nb), "validating NewBook")
}

// NewBookmark is posted by a student to bookmark a topic.
type NewBookmark struct {
	TopicID string `json:"topic_id" validate:"required"`
	Title   string `json:"title"`
}

func (nb *NewBookmark) Validate(validate *validator.Validate) error {
	nb.Title = core.CleanString(nb.Title)
	return errors.Wrap(validate.Struct(nb), "validating NewBookmark")
}
