package dummydb

import (
	"context"
	"strings"

	"github.com/trezcool/eduroot/core/content"
)

type ContentRepository struct {
	db *contentTable
}

var _ content.Repository = (*ContentRepository)(nil) // interface compliance check

func NewContentRepository(db *DB) *ContentRepository {
	return &ContentRepository{db: db.content}
}

func (repo *ContentRepository) InsertClass(cls content.Class) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.classes = append(repo.db.classes, cls)
}

func (repo *ContentRepository) InsertSubject(subj content.Subject) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.subjects = append(repo.db.subjects, subj)
}

func (repo *ContentRepository) InsertMockTest(mt content.MockTest) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.mockTests = append(repo.db.mockTests, mt)
}

func (repo *ContentRepository) QueryClasses(context.Context) ([]content.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]content.Class, 0, len(repo.db.classes)), repo.db.classes...), nil
}

func (repo *ContentRepository) QuerySubjectsByClass(_ context.Context, classID string) ([]content.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjects := make([]content.Subject, 0)
	for _, subj := range repo.db.subjects {
		if subj.ClassID == classID {
			subjects = append(subjects, subj)
		}
	}
	return subjects, nil
}

func (repo *ContentRepository) QueryTopicsBySubject(_ context.Context, subjectID string) ([]content.TopicSummary, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	topics := make([]content.TopicSummary, 0)
	for _, t := range repo.db.topics {
		if t.SubjectID == subjectID {
			topics = append(topics, t.Summary())
		}
	}
	return topics, nil
}

func (repo *ContentRepository) GetTopicByID(_ context.Context, id string) (content.Topic, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, t := range repo.db.topics {
		if t.ID == id {
			return t, nil
		}
	}
	return content.Topic{}, content.ErrTopicNotFound
}

func (repo *ContentRepository) SearchTopics(_ context.Context, q string, limit int) ([]content.TopicSummary, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	q = strings.ToLower(q)
	topics := make([]content.TopicSummary, 0)
	for _, t := range repo.db.topics {
		if len(topics) == limit {
			break
		}
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.TitleHi), q) {
			topics = append(topics, t.Summary())
		}
	}
	return topics, nil
}

func (repo *ContentRepository) CreateTopic(_ context.Context, topic content.Topic) (content.Topic, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.topics = append(repo.db.topics, topic)
	return topic, nil
}

func (repo *ContentRepository) QueryBooks(context.Context) ([]content.Book, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]content.Book, 0, len(repo.db.books)), repo.db.books...), nil
}

func (repo *ContentRepository) GetBookByID(_ context.Context, id string) (content.Book, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, b := range repo.db.books {
		if b.ID == id {
			return b, nil
		}
	}
	return content.Book{}, content.ErrBookNotFound
}

func (repo *ContentRepository) CreateBook(_ context.Context, book content.Book) (content.Book, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.books = append(repo.db.books, book)
	return book, nil
}

func (repo *ContentRepository) QueryMockTests(context.Context) ([]content.MockTest, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]content.MockTest, 0, len(repo.db.mockTests)), repo.db.mockTests...), nil
}

func (repo *ContentRepository) QueryBookmarksByUser(_ context.Context, userID string) ([]content.Bookmark, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	bms := make([]content.Bookmark, 0)
	for _, bm := range repo.db.bookmarks {
		if bm.UserID == userID {
			bms = append(bms, bm)
		}
	}
	return bms, nil
}

func (repo *ContentRepository) CreateBookmark(_ context.Context, bm content.Bookmark) (content.Bookmark, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.bookmarks = append(repo.db.bookmarks, bm)
	return bm, nil
}
