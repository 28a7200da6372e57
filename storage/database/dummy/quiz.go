package dummydb

import (
	"context"

	"github.com/trezcool/eduroot/core/quiz"
)

type QuizRepository struct {
	db *quizTable
}

var _ quiz.Repository = (*QuizRepository)(nil) // interface compliance check

func NewQuizRepository(db *DB) *QuizRepository {
	return &QuizRepository{db: db.quiz}
}

func (repo *QuizRepository) GetQuizByID(_ context.Context, id string) (quiz.Quiz, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, qz := range repo.db.quizzes {
		if qz.ID == id {
			return qz, nil
		}
	}
	return quiz.Quiz{}, quiz.ErrNotFound
}

func (repo *QuizRepository) GetQuizByTopic(_ context.Context, topicID string) (quiz.Quiz, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, qz := range repo.db.quizzes {
		if qz.TopicID == topicID {
			return qz, nil
		}
	}
	return quiz.Quiz{}, quiz.ErrNotFound
}

func (repo *QuizRepository) SaveQuiz(_ context.Context, qz quiz.Quiz) (quiz.Quiz, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, q := range repo.db.quizzes {
		if q.ID == qz.ID {
			repo.db.quizzes[i] = qz
			return qz, nil
		}
	}
	repo.db.quizzes = append(repo.db.quizzes, qz)
	return qz, nil
}

func (repo *QuizRepository) CreateResult(_ context.Context, res quiz.Result) (quiz.Result, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.results = append(repo.db.results, res)
	return res, nil
}

func (repo *QuizRepository) QueryResultsByUser(_ context.Context, userID string) ([]quiz.Result, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	results := make([]quiz.Result, 0)
	for _, res := range repo.db.results {
		if res.UserID == userID {
			results = append(results, res)
		}
	}
	return results, nil
}
