package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core/quiz"
)

const resultColumns = "id, user_id, quiz_id, topic_id, score, correct, total, submitted_at"

type quizRow struct {
	ID              string         `db:"id"`
	TopicID         string         `db:"topic_id"`
	Title           string         `db:"title"`
	TitleHi         string         `db:"title_hi"`
	DurationMinutes int            `db:"duration_minutes"`
	Questions       types.JSONText `db:"questions"`
}

func toQuizRow(qz quiz.Quiz) (quizRow, error) {
	questions := qz.Questions
	if questions == nil {
		questions = []quiz.Question{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return quizRow{}, errors.Wrap(err, "encoding questions")
	}
	return quizRow{
		ID:              qz.ID,
		TopicID:         qz.TopicID,
		Title:           qz.Title,
		TitleHi:         qz.TitleHi,
		DurationMinutes: qz.DurationMinutes,
		Questions:       data,
	}, nil
}

func (row quizRow) quiz() (quiz.Quiz, error) {
	qz := quiz.Quiz{
		ID:              row.ID,
		TopicID:         row.TopicID,
		Title:           row.Title,
		TitleHi:         row.TitleHi,
		DurationMinutes: row.DurationMinutes,
	}
	if err := row.Questions.Unmarshal(&qz.Questions); err != nil {
		return quiz.Quiz{}, errors.Wrap(err, "decoding questions")
	}
	return qz, nil
}

type QuizRepository struct {
	db *sqlx.DB
}

var _ quiz.Repository = (*QuizRepository)(nil) // interface compliance check

func NewQuizRepository(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (repo *QuizRepository) getQuiz(ctx context.Context, where string, arg interface{}) (quiz.Quiz, error) {
	var row quizRow
	q := "SELECT id, topic_id, title, title_hi, duration_minutes, questions FROM quizzes WHERE " + where + " LIMIT 1"
	if err := repo.db.GetContext(ctx, &row, q, arg); err != nil {
		if err == sql.ErrNoRows {
			return quiz.Quiz{}, quiz.ErrNotFound
		}
		return quiz.Quiz{}, errors.Wrap(err, "selecting quiz")
	}
	return row.quiz()
}

func (repo *QuizRepository) GetQuizByID(ctx context.Context, id string) (quiz.Quiz, error) {
	return repo.getQuiz(ctx, "id = $1", id)
}

func (repo *QuizRepository) GetQuizByTopic(ctx context.Context, topicID string) (quiz.Quiz, error) {
	return repo.getQuiz(ctx, "topic_id = $1", topicID)
}

func (repo *QuizRepository) SaveQuiz(ctx context.Context, qz quiz.Quiz) (quiz.Quiz, error) {
	row, err := toQuizRow(qz)
	if err != nil {
		return quiz.Quiz{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO quizzes (id, topic_id, title, title_hi, duration_minutes, questions)
		VALUES (:id, :topic_id, :title, :title_hi, :duration_minutes, :questions)
		ON CONFLICT (id) DO UPDATE SET
			topic_id = EXCLUDED.topic_id,
			title = EXCLUDED.title,
			title_hi = EXCLUDED.title_hi,
			duration_minutes = EXCLUDED.duration_minutes,
			questions = EXCLUDED.questions`,
		row,
	)
	if err != nil {
		return quiz.Quiz{}, errors.Wrap(err, "upserting quiz")
	}
	return qz, nil
}

func (repo *QuizRepository) CreateResult(ctx context.Context, res quiz.Result) (quiz.Result, error) {
	res.SubmittedAt = res.SubmittedAt.UTC()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO quiz_results (`+resultColumns+`)
		VALUES (:id, :user_id, :quiz_id, :topic_id, :score, :correct, :total, :submitted_at)`,
		res,
	)
	if err != nil {
		return quiz.Result{}, errors.Wrap(err, "inserting quiz result")
	}
	return res, nil
}

func (repo *QuizRepository) QueryResultsByUser(ctx context.Context, userID string) ([]quiz.Result, error) {
	results := make([]quiz.Result, 0)
	err := repo.db.SelectContext(ctx, &results,
		"SELECT "+resultColumns+" FROM quiz_results WHERE user_id = $1 ORDER BY submitted_at",
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "selecting quiz results")
	}
	for i := range results {
		results[i].SubmittedAt = results[i].SubmittedAt.UTC()
	}
	return results, nil
}
