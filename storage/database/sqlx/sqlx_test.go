package sqlxrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduroot/core/content"
	"github.com/trezcool/eduroot/core/order"
	"github.com/trezcool/eduroot/core/quiz"
	"github.com/trezcool/eduroot/core/user"
	sqlxrepos "github.com/trezcool/eduroot/storage/database/sqlx"
	testutil "github.com/trezcool/eduroot/tests"
)

// One database is shared by every subtest; each starts from empty tables.
func TestRepositories(t *testing.T) {
	db := testutil.OpenDB(t)

	for name, fn := range map[string]func(*testing.T, *sqlx.DB){
		"users":     testUserRepository,
		"content":   testContentRepository,
		"quizzes":   testQuizRepository,
		"orders":    testOrderRepository,
		"analytics": testAnalyticsRepository,
	} {
		fn := fn
		t.Run(name, func(t *testing.T) {
			testutil.ResetDB(t, db)
			fn(t, db)
		})
	}
}

func testUserRepository(t *testing.T, db *sqlx.DB) {
	ctx := context.Background()
	repo := sqlxrepos.NewUserRepository(db)

	usr := testutil.CreateUser(t, repo, "Jane", "jane@test.cd", "pwd123!", user.RoleAdmin)

	got, err := repo.GetUserByEmail(ctx, "jane@test.cd")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)
	assert.Equal(t, user.RoleAdmin, got.Role)
	assert.True(t, got.CheckPassword("pwd123!"))
	assert.WithinDuration(t, usr.CreatedAt, got.CreatedAt, time.Millisecond)

	_, err = repo.GetUserByEmail(ctx, "JANE@test.cd")
	assert.Equal(t, user.ErrNotFound, err, "emails are case-sensitive")

	_, err = repo.CreateUser(ctx, user.User{ID: uuid.New().String(), Name: "Jane 2", Email: "jane@test.cd", Role: user.RoleStudent})
	assert.Equal(t, user.ErrEmailExists, err)

	got.Name = "Jane Doe"
	_, err = repo.UpdateUser(ctx, got)
	require.NoError(t, err)
	got, err = repo.GetUserByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)

	_, err = repo.UpdateUser(ctx, user.User{ID: "missing", Email: "x@test.cd"})
	assert.Equal(t, user.ErrNotFound, err)
}

func testContentRepository(t *testing.T, db *sqlx.DB) {
	ctx := context.Background()
	repo := sqlxrepos.NewContentRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	_, err := db.Exec(`
		INSERT INTO classes (id, name, name_hi, description, description_hi, class_number)
		VALUES ('c10', 'Class 10', '', '', '', 10), ('c9', 'Class 9', '', '', '', 9)`)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO subjects (id, class_id, name, name_hi, icon, description, description_hi)
		VALUES ('s2', 'c10', 'Science', '', '', '', ''), ('s1', 'c10', 'Maths', '', '', '', '')`)
	require.NoError(t, err)

	classes, err := repo.QueryClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, 9, classes[0].ClassNumber)

	subjects, err := repo.QuerySubjectsByClass(ctx, "c10")
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Maths", subjects[0].Name)

	topic := content.Topic{
		ID:        "t1",
		ClassID:   "c10",
		SubjectID: "s1",
		Title:     "100% Algebra_basics",
		Content:   "x + y",
		Formulas:  []string{"a^2 + b^2 = c^2"},
		CreatedAt: now,
	}
	_, err = repo.CreateTopic(ctx, topic)
	require.NoError(t, err)
	_, err = repo.CreateTopic(ctx, content.Topic{ID: "t2", ClassID: "c10", SubjectID: "s1", Title: "1000 Algebraic sums", CreatedAt: now.Add(time.Second)})
	require.NoError(t, err)

	got, err := repo.GetTopicByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, topic.Formulas, got.Formulas)
	assert.Equal(t, []string{}, got.Diagrams)
	assert.True(t, now.Equal(got.CreatedAt))

	_, err = repo.GetTopicByID(ctx, "missing")
	assert.Equal(t, content.ErrTopicNotFound, err)

	summaries, err := repo.QueryTopicsBySubject(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "t1", summaries[0].ID)

	found, err := repo.SearchTopics(ctx, "ALGEBRA", 50)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.SearchTopics(ctx, "100%", 50)
	require.NoError(t, err)
	require.Len(t, found, 1, "LIKE wildcards are matched literally")
	assert.Equal(t, "t1", found[0].ID)

	found, err = repo.SearchTopics(ctx, "algebra", 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	book, err := repo.CreateBook(ctx, content.Book{ID: "b1", ClassID: "c10", Title: "NCERT Maths", Price: 199.5, Pages: 320, CreatedAt: now})
	require.NoError(t, err)
	gotBook, err := repo.GetBookByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, book, gotBook)
	_, err = repo.GetBookByID(ctx, "missing")
	assert.Equal(t, content.ErrBookNotFound, err)
	books, err := repo.QueryBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	tests, err := repo.QueryMockTests(ctx)
	require.NoError(t, err)
	assert.Empty(t, tests)

	usr := testutil.CreateUser(t, sqlxrepos.NewUserRepository(db), "Jane", "jane@test.cd", "", "")
	_, err = repo.CreateBookmark(ctx, content.Bookmark{ID: "bm1", UserID: usr.ID, TopicID: "t1", Title: "Algebra", CreatedAt: now})
	require.NoError(t, err)
	bms, err := repo.QueryBookmarksByUser(ctx, usr.ID)
	require.NoError(t, err)
	require.Len(t, bms, 1)
	assert.Equal(t, "t1", bms[0].TopicID)
}

func testQuizRepository(t *testing.T, db *sqlx.DB) {
	ctx := context.Background()
	repo := sqlxrepos.NewQuizRepository(db)

	qz := quiz.Quiz{
		ID:              "quiz-1",
		TopicID:         "t1",
		Title:           "Algebra",
		DurationMinutes: 10,
		Questions: []quiz.Question{
			{ID: "q1", Question: "1 + 1", Options: []string{"1", "2"}, CorrectAnswer: "2"},
		},
	}
	_, err := repo.SaveQuiz(ctx, qz)
	require.NoError(t, err)

	got, err := repo.GetQuizByTopic(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, qz, got)

	qz.Title = "Algebra II"
	_, err = repo.SaveQuiz(ctx, qz)
	require.NoError(t, err)
	got, err = repo.GetQuizByID(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, "Algebra II", got.Title)

	_, err = repo.GetQuizByID(ctx, "missing")
	assert.Equal(t, quiz.ErrNotFound, err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	for i, score := range []float64{50, 100} {
		_, err = repo.CreateResult(ctx, quiz.Result{
			ID:          uuid.New().String(),
			UserID:      "u1",
			QuizID:      "quiz-1",
			TopicID:     "t1",
			Score:       score,
			Correct:     i,
			Total:       1,
			SubmittedAt: now.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
	results, err := repo.QueryResultsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 50.0, results[0].Score)
	assert.Equal(t, 100.0, results[1].Score)

	results, err = repo.QueryResultsByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func testOrderRepository(t *testing.T, db *sqlx.DB) {
	ctx := context.Background()
	repo := sqlxrepos.NewOrderRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	ord := order.Order{
		ID:             "o1",
		UserID:         "u1",
		GatewayOrderID: "order_1",
		Amount:         499,
		Currency:       "INR",
		Items:          []map[string]interface{}{{"book_id": "b1", "qty": float64(1)}},
		Status:         order.StatusCreated,
		CreatedAt:      now,
	}
	_, err := repo.CreateOrder(ctx, ord)
	require.NoError(t, err)

	got, err := repo.GetOrderByGatewayID(ctx, "order_1")
	require.NoError(t, err)
	assert.Equal(t, ord, got)

	_, err = repo.GetOrderByGatewayID(ctx, "order_x")
	assert.Equal(t, order.ErrNotFound, err)

	completed := now.Add(time.Minute)
	got.Status = order.StatusCompleted
	got.GatewayPaymentID = "pay_1"
	got.CompletedAt = &completed
	_, err = repo.UpdateOrder(ctx, got)
	require.NoError(t, err)

	orders, err := repo.QueryOrders(ctx, "u1", order.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "pay_1", orders[0].GatewayPaymentID)
	require.NotNil(t, orders[0].CompletedAt)
	assert.True(t, completed.Equal(*orders[0].CompletedAt))

	orders, err = repo.QueryOrders(ctx, "u1", order.StatusCreated)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = repo.UpdateOrder(ctx, order.Order{ID: "missing", Status: order.StatusCompleted})
	assert.Equal(t, order.ErrNotFound, err)
}

func testAnalyticsRepository(t *testing.T, db *sqlx.DB) {
	ctx := context.Background()
	repo := sqlxrepos.NewAnalyticsRepository(db)
	orders := sqlxrepos.NewOrderRepository(db)

	testutil.CreateUser(t, sqlxrepos.NewUserRepository(db), "Jane", "jane@test.cd", "", "")
	for i, o := range []struct {
		amount float64
		status string
	}{
		{100.5, order.StatusCompleted},
		{200, order.StatusCompleted},
		{999, order.StatusCreated},
	} {
		_, err := orders.CreateOrder(ctx, order.Order{
			ID:        uuid.New().String(),
			UserID:    "u1",
			Amount:    o.amount,
			Currency:  "INR",
			Status:    o.status,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	n, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountTopics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = repo.CountOrders(ctx, order.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sum, err := repo.SumOrderAmounts(ctx, order.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 300.5, sum)

	sum, err = repo.SumOrderAmounts(ctx, "refunded")
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum)
}
