package quiz

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core"
)

var (
	// errors
	ErrNotFound = errors.New("Quiz not found")
)

type (
	// Repository is the quiz store. Lookups fail with ErrNotFound.
	Repository interface {
		GetQuizByID(ctx context.Context, id string) (Quiz, error)
		GetQuizByTopic(ctx context.Context, topicID string) (Quiz, error)
		// SaveQuiz inserts qz or replaces the quiz with the same ID.
		SaveQuiz(ctx context.Context, qz Quiz) (Quiz, error)
		CreateResult(ctx context.Context, res Result) (Result, error)
		QueryResultsByUser(ctx context.Context, userID string) ([]Result, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func notFound(err error) error {
	if errors.Cause(err) == ErrNotFound {
		return core.NewNotFoundError("Quiz")
	}
	return err
}

// GetByTopic returns the quiz attached to a topic.
func (svc *Service) GetByTopic(ctx context.Context, topicID string) (Quiz, error) {
	qz, err := svc.repo.GetQuizByTopic(ctx, topicID)
	if err != nil {
		return Quiz{}, errors.Wrap(notFound(err), "finding quiz by topic")
	}
	return qz, nil
}

// Submit grades the answers of userID and records the attempt.
// Every call records a new Result, even for identical submissions.
func (svc *Service) Submit(ctx context.Context, userID string, sub Submission) (Score, error) {
	qz, err := svc.repo.GetQuizByID(ctx, sub.QuizID)
	if err != nil {
		return Score{}, errors.Wrap(notFound(err), "finding quiz")
	}

	score, err := Grade(qz, sub.Answers)
	if err != nil {
		return Score{}, err
	}

	res := Result{
		ID:          uuid.New().String(),
		UserID:      userID,
		QuizID:      qz.ID,
		TopicID:     sub.TopicID,
		Score:       score.Score,
		Correct:     score.Correct,
		Total:       score.Total,
		SubmittedAt: core.NowFunc(),
	}
	if _, err = svc.repo.CreateResult(ctx, res); err != nil {
		return Score{}, errors.Wrap(err, "creating result")
	}
	return score, nil
}

// Progress lists the results of userID.
func (svc *Service) Progress(ctx context.Context, userID string) ([]Result, error) {
	results, err := svc.repo.QueryResultsByUser(ctx, userID)
	return results, errors.Wrap(err, "querying results")
}

// Import validates qz and saves it. A missing ID is generated.
func (svc *Service) Import(ctx context.Context, validate *validator.Validate, qz Quiz) (Quiz, error) {
	if err := validate.Struct(qz); err != nil {
		return Quiz{}, err
	}
	if err := qz.CheckAnswers(); err != nil {
		return Quiz{}, err
	}
	if qz.ID == "" {
		qz.ID = uuid.New().String()
	}
	qz, err := svc.repo.SaveQuiz(ctx, qz)
	return qz, errors.Wrap(err, "saving quiz")
}
