// Package rediscache caches read-mostly records in Redis in front of a repository.
package rediscache

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/trezcool/eduroot/core"
	"github.com/trezcool/eduroot/core/quiz"
)

// QuizRepository is a read-through cache of quizzes. Quizzes are stored as JSON under
// quiz:id:{id} and quiz:topic:{topicID}; results are never cached.
type QuizRepository struct {
	quiz.Repository

	client *redis.Client
	logger core.Logger
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

var _ quiz.Repository = (*QuizRepository)(nil) // interface compliance check

func NewQuizRepository(client *redis.Client, next quiz.Repository, ttl time.Duration, logger core.Logger) *QuizRepository {
	return &QuizRepository{
		Repository: next,
		client:     client,
		logger:     logger,
		ttl:        ttl,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func idKey(id string) string { return "quiz:id:" + id }
func topicKey(topicID string) string { return "quiz:topic:" + topicID }

func (r *QuizRepository) GetQuizByID(ctx context.Context, id string) (quiz.Quiz, error) {
	return r.get(ctx, idKey(id), func(ctx context.Context) (quiz.Quiz, error) {
		return r.Repository.GetQuizByID(ctx, id)
	})
}

func (r *QuizRepository) GetQuizByTopic(ctx context.Context, topicID string) (quiz.Quiz, error) {
	return r.get(ctx, topicKey(topicID), func(ctx context.Context) (quiz.Quiz, error) {
		return r.Repository.GetQuizByTopic(ctx, topicID)
	})
}

// SaveQuiz writes through to the underlying repository and evicts the cached entries.
func (r *QuizRepository) SaveQuiz(ctx context.Context, qz quiz.Quiz) (quiz.Quiz, error) {
	var oldTopic string
	if old, err := r.Repository.GetQuizByID(ctx, qz.ID); err == nil {
		oldTopic = old.TopicID
	}

	saved, err := r.Repository.SaveQuiz(ctx, qz)
	if err != nil {
		return quiz.Quiz{}, err
	}

	keys := []string{idKey(saved.ID), topicKey(saved.TopicID)}
	if oldTopic != "" && oldTopic != saved.TopicID {
		keys = append(keys, topicKey(oldTopic))
	}
	if err = r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("evicting cached quiz", errors.Wrap(err, "redis DEL"))
	}
	return saved, nil
}

func (r *QuizRepository) get(ctx context.Context, key string, load func(context.Context) (quiz.Quiz, error)) (quiz.Quiz, error) {
	if qz, ok := r.cached(ctx, key); ok {
		return qz, nil
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// re-check cache in case another goroutine filled it
		if qz, ok := r.cached(ctx, key); ok {
			return qz, nil
		}

		qz, err := load(ctx)
		if err != nil {
			return quiz.Quiz{}, err
		}

		data, err := json.Marshal(qz)
		if err == nil {
			err = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		if err != nil {
			r.logger.Warn("caching quiz", errors.Wrap(err, key))
		}
		return qz, nil
	})
	if err != nil {
		return quiz.Quiz{}, err
	}
	return result.(quiz.Quiz), nil
}

func (r *QuizRepository) cached(ctx context.Context, key string) (quiz.Quiz, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("reading cached quiz", errors.Wrap(err, key))
		}
		return quiz.Quiz{}, false
	}
	var qz quiz.Quiz
	if err = json.Unmarshal(data, &qz); err != nil {
		return quiz.Quiz{}, false
	}
	return qz, true
}

func (r *QuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
