package rediscache

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduroot/core/quiz"
	dummydb "github.com/trezcool/eduroot/storage/database/dummy"
)

type countingRepo struct {
	quiz.Repository

	mu    sync.Mutex
	calls int
}

func (r *countingRepo) count() {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
}

func (r *countingRepo) GetQuizByID(ctx context.Context, id string) (quiz.Quiz, error) {
	r.count()
	return r.Repository.GetQuizByID(ctx, id)
}

func (r *countingRepo) GetQuizByTopic(ctx context.Context, topicID string) (quiz.Quiz, error) {
	r.count()
	return r.Repository.GetQuizByTopic(ctx, topicID)
}

type testLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *testLogger) Debug(string, ...interface{}) {}
func (l *testLogger) Info(string, ...interface{})  {}
func (l *testLogger) Error(string, ...interface{}) {}
func (l *testLogger) Fatal(string, ...interface{}) {}
func (l *testLogger) Warn(msg string, _ ...interface{}) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}

func sampleQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:      "quiz-1",
		TopicID: "topic-1",
		Title:   "Arithmetic",
		Questions: []quiz.Question{
			{ID: "q1", Question: "2 + 2", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		},
	}
}

func setup(t *testing.T) (*QuizRepository, *countingRepo, *miniredis.Miniredis, *testLogger) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	next := &countingRepo{Repository: dummydb.NewQuizRepository(dummydb.Open())}
	if _, err = next.SaveQuiz(context.Background(), sampleQuiz()); err != nil {
		t.Fatalf("SaveQuiz() failed: %v", err)
	}
	logger := new(testLogger)
	return NewQuizRepository(client, next, time.Minute, logger), next, mr, logger
}

func TestQuizRepository_caches(t *testing.T) {
	repo, next, mr, _ := setup(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		qz, err := repo.GetQuizByID(ctx, "quiz-1")
		require.NoError(t, err)
		assert.Equal(t, sampleQuiz(), qz)
	}
	assert.Equal(t, 1, next.calls)
	assert.True(t, mr.Exists("quiz:id:quiz-1"))

	ttl := mr.TTL("quiz:id:quiz-1")
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+6*time.Second)

	for i := 0; i < 3; i++ {
		qz, err := repo.GetQuizByTopic(ctx, "topic-1")
		require.NoError(t, err)
		assert.Equal(t, "quiz-1", qz.ID)
	}
	assert.Equal(t, 2, next.calls)
	assert.True(t, mr.Exists("quiz:topic:topic-1"))
}

func TestQuizRepository_notFoundIsNotCached(t *testing.T) {
	repo, next, mr, _ := setup(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.GetQuizByTopic(ctx, "lol")
		assert.Equal(t, quiz.ErrNotFound, err)
	}
	assert.Equal(t, 2, next.calls)
	assert.False(t, mr.Exists("quiz:topic:lol"))
}

func TestQuizRepository_SaveQuizEvicts(t *testing.T) {
	repo, _, mr, _ := setup(t)
	ctx := context.Background()

	_, err := repo.GetQuizByID(ctx, "quiz-1")
	require.NoError(t, err)
	_, err = repo.GetQuizByTopic(ctx, "topic-1")
	require.NoError(t, err)

	moved := sampleQuiz()
	moved.TopicID = "topic-2"
	moved.Title = "Arithmetic II"
	_, err = repo.SaveQuiz(ctx, moved)
	require.NoError(t, err)

	assert.False(t, mr.Exists("quiz:id:quiz-1"))
	assert.False(t, mr.Exists("quiz:topic:topic-1"))

	qz, err := repo.GetQuizByID(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, "Arithmetic II", qz.Title)

	_, err = repo.GetQuizByTopic(ctx, "topic-1")
	assert.Equal(t, quiz.ErrNotFound, err)
}

func TestQuizRepository_redisDown(t *testing.T) {
	repo, next, mr, logger := setup(t)
	mr.SetError("ERR simulated failure")

	qz, err := repo.GetQuizByID(context.Background(), "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, "quiz-1", qz.ID)
	assert.Equal(t, 1, next.calls)
	assert.NotEmpty(t, logger.warns)
}
