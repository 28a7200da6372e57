package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core/content"
)

const (
	classColumns        = "id, name, name_hi, description, description_hi, class_number"
	subjectColumns      = "id, class_id, name, name_hi, icon, description, description_hi"
	topicSummaryColumns = "id, class_id, subject_id, title, title_hi, duration_minutes, created_at"
	topicColumns        = topicSummaryColumns + ", content, content_hi, formulas, diagrams"
	bookColumns         = "id, class_id, title, title_hi, description, description_hi, price, image, pages, author, created_at"
	mockTestColumns     = "id, class_id, title, title_hi, subject, duration_minutes, total_marks, questions_count"
	bookmarkColumns     = "id, user_id, topic_id, title, created_at"
)

type topicRow struct {
	ID              string         `db:"id"`
	ClassID         string         `db:"class_id"`
	SubjectID       string         `db:"subject_id"`
	Title           string         `db:"title"`
	TitleHi         string         `db:"title_hi"`
	Content         string         `db:"content"`
	ContentHi       string         `db:"content_hi"`
	Formulas        pq.StringArray `db:"formulas"`
	Diagrams        pq.StringArray `db:"diagrams"`
	DurationMinutes int            `db:"duration_minutes"`
	CreatedAt       time.Time      `db:"created_at"`
}

func toTopicRow(t content.Topic) topicRow {
	// a nil pq.StringArray is stored as NULL
	if t.Formulas == nil {
		t.Formulas = []string{}
	}
	if t.Diagrams == nil {
		t.Diagrams = []string{}
	}
	return topicRow{
		ID:              t.ID,
		ClassID:         t.ClassID,
		SubjectID:       t.SubjectID,
		Title:           t.Title,
		TitleHi:         t.TitleHi,
		Content:         t.Content,
		ContentHi:       t.ContentHi,
		Formulas:        pq.StringArray(t.Formulas),
		Diagrams:        pq.StringArray(t.Diagrams),
		DurationMinutes: t.DurationMinutes,
		CreatedAt:       t.CreatedAt.UTC(),
	}
}

func (row topicRow) topic() content.Topic {
	formulas, diagrams := []string(row.Formulas), []string(row.Diagrams)
	if formulas == nil {
		formulas = []string{}
	}
	if diagrams == nil {
		diagrams = []string{}
	}
	return content.Topic{
		ID:              row.ID,
		ClassID:         row.ClassID,
		SubjectID:       row.SubjectID,
		Title:           row.Title,
		TitleHi:         row.TitleHi,
		Content:         row.Content,
		ContentHi:       row.ContentHi,
		Formulas:        formulas,
		Diagrams:        diagrams,
		DurationMinutes: row.DurationMinutes,
		CreatedAt:       row.CreatedAt.UTC(),
	}
}

type ContentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*ContentRepository)(nil) // interface compliance check

func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (repo *ContentRepository) QueryClasses(ctx context.Context) ([]content.Class, error) {
	classes := make([]content.Class, 0)
	err := repo.db.SelectContext(ctx, &classes, "SELECT "+classColumns+" FROM classes ORDER BY class_number")
	return classes, errors.Wrap(err, "selecting classes")
}

func (repo *ContentRepository) QuerySubjectsByClass(ctx context.Context, classID string) ([]content.Subject, error) {
	subjects := make([]content.Subject, 0)
	err := repo.db.SelectContext(ctx, &subjects,
		"SELECT "+subjectColumns+" FROM subjects WHERE class_id = $1 ORDER BY name", classID)
	return subjects, errors.Wrap(err, "selecting subjects")
}

func (repo *ContentRepository) QueryTopicsBySubject(ctx context.Context, subjectID string) ([]content.TopicSummary, error) {
	topics := make([]content.TopicSummary, 0)
	err := repo.db.SelectContext(ctx, &topics,
		"SELECT "+topicSummaryColumns+" FROM topics WHERE subject_id = $1 ORDER BY created_at", subjectID)
	return topics, errors.Wrap(err, "selecting topics")
}

func (repo *ContentRepository) GetTopicByID(ctx context.Context, id string) (content.Topic, error) {
	var row topicRow
	if err := repo.db.GetContext(ctx, &row, "SELECT "+topicColumns+" FROM topics WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return content.Topic{}, content.ErrTopicNotFound
		}
		return content.Topic{}, errors.Wrap(err, "selecting topic")
	}
	return row.topic(), nil
}

// escapeLike escapes the LIKE wildcards of s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (repo *ContentRepository) SearchTopics(ctx context.Context, q string, limit int) ([]content.TopicSummary, error) {
	topics := make([]content.TopicSummary, 0)
	pattern := "%" + escapeLike(q) + "%"
	err := repo.db.SelectContext(ctx, &topics, `
		SELECT `+topicSummaryColumns+` FROM topics
		WHERE title ILIKE $1 OR title_hi ILIKE $1
		ORDER BY created_at
		LIMIT $2`,
		pattern, limit,
	)
	return topics, errors.Wrap(err, "searching topics")
}

func (repo *ContentRepository) CreateTopic(ctx context.Context, topic content.Topic) (content.Topic, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO topics (`+topicColumns+`)
		VALUES (:id, :class_id, :subject_id, :title, :title_hi, :duration_minutes, :created_at,
			:content, :content_hi, :formulas, :diagrams)`,
		toTopicRow(topic),
	)
	if err != nil {
		return content.Topic{}, errors.Wrap(err, "inserting topic")
	}
	return topic, nil
}

func (repo *ContentRepository) QueryBooks(ctx context.Context) ([]content.Book, error) {
	books := make([]content.Book, 0)
	err := repo.db.SelectContext(ctx, &books, "SELECT "+bookColumns+" FROM books ORDER BY created_at")
	return books, errors.Wrap(err, "selecting books")
}

func (repo *ContentRepository) GetBookByID(ctx context.Context, id string) (content.Book, error) {
	var book content.Book
	if err := repo.db.GetContext(ctx, &book, "SELECT "+bookColumns+" FROM books WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return content.Book{}, content.ErrBookNotFound
		}
		return content.Book{}, errors.Wrap(err, "selecting book")
	}
	book.CreatedAt = book.CreatedAt.UTC()
	return book, nil
}

func (repo *ContentRepository) CreateBook(ctx context.Context, book content.Book) (content.Book, error) {
	book.CreatedAt = book.CreatedAt.UTC()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO books (`+bookColumns+`)
		VALUES (:id, :class_id, :title, :title_hi, :description, :description_hi, :price, :image, :pages, :author, :created_at)`,
		book,
	)
	if err != nil {
		return content.Book{}, errors.Wrap(err, "inserting book")
	}
	return book, nil
}

func (repo *ContentRepository) QueryMockTests(ctx context.Context) ([]content.MockTest, error) {
	tests := make([]content.MockTest, 0)
	err := repo.db.SelectContext(ctx, &tests, "SELECT "+mockTestColumns+" FROM mock_tests ORDER BY title")
	return tests, errors.Wrap(err, "selecting mock tests")
}

func (repo *ContentRepository) QueryBookmarksByUser(ctx context.Context, userID string) ([]content.Bookmark, error) {
	bms := make([]content.Bookmark, 0)
	err := repo.db.SelectContext(ctx, &bms,
		"SELECT "+bookmarkColumns+" FROM bookmarks WHERE user_id = $1 ORDER BY created_at", userID)
	return bms, errors.Wrap(err, "selecting bookmarks")
}

func (repo *ContentRepository) CreateBookmark(ctx context.Context, bm content.Bookmark) (content.Bookmark, error) {
	bm.CreatedAt = bm.CreatedAt.UTC()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO bookmarks (`+bookmarkColumns+`)
		VALUES (:id, :user_id, :topic_id, :title, :created_at)`,
		bm,
	)
	if err != nil {
		return content.Bookmark{}, errors.Wrap(err, "inserting bookmark")
	}
	return bm, nil
}
