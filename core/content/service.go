package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core"
)

// SearchLimit caps the number of topics returned by Search.
const SearchLimit = 50

var (
	// errors
	ErrTopicNotFound = errors.New("Topic not found")
	ErrBookNotFound  = errors.New("Book not found")

	errEmptyQuery = core.NewValidationError(
		errors.New("Invalid data"),
		core.FieldError{Field: "q", Error: "this field is required"},
	)
)

type (
	Repository interface {
		QueryClasses(ctx context.Context) ([]Class, error)
		QuerySubjectsByClass(ctx context.Context, classID string) ([]Subject, error)
		QueryTopicsBySubject(ctx context.Context, subjectID string) ([]TopicSummary, error)
		// GetTopicByID fails with ErrTopicNotFound.
		GetTopicByID(ctx context.Context, id string) (Topic, error)
		// SearchTopics does a case-insensitive match of q on Topic.Title or Topic.TitleHi.
		SearchTopics(ctx context.Context, q string, limit int) ([]TopicSummary, error)
		CreateTopic(ctx context.Context, topic Topic) (Topic, error)
		QueryBooks(ctx context.Context) ([]Book, error)
		// GetBookByID fails with ErrBookNotFound.
		GetBookByID(ctx context.Context, id string) (Book, error)
		CreateBook(ctx context.Context, book Book) (Book, error)
		QueryMockTests(ctx context.Context) ([]MockTest, error)
		QueryBookmarksByUser(ctx context.Context, userID string) ([]Bookmark, error)
		CreateBookmark(ctx context.Context, bm Bookmark) (Bookmark, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Classes(ctx context.Context) ([]Class, error) {
	classes, err := svc.repo.QueryClasses(ctx)
	return classes, errors.Wrap(err, "querying classes")
}

func (svc *Service) Subjects(ctx context.Context, classID string) ([]Subject, error) {
	subjects, err := svc.repo.QuerySubjectsByClass(ctx, classID)
	return subjects, errors.Wrap(err, "querying subjects")
}

func (svc *Service) Topics(ctx context.Context, subjectID string) ([]TopicSummary, error) {
	topics, err := svc.repo.QueryTopicsBySubject(ctx, subjectID)
	return topics, errors.Wrap(err, "querying topics")
}

func (svc *Service) Topic(ctx context.Context, id string) (Topic, error) {
	topic, err := svc.repo.GetTopicByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrTopicNotFound {
			return Topic{}, core.NewNotFoundError("Topic")
		}
		return Topic{}, errors.Wrap(err, "finding topic")
	}
	return topic, nil
}

// Search returns at most SearchLimit topics whose title contains q.
// Search fails with a validation error when q is blank.
func (svc *Service) Search(ctx context.Context, q string) ([]TopicSummary, error) {
	if q = core.CleanString(q); q == "" {
		return nil, errEmptyQuery
	}
	topics, err := svc.repo.SearchTopics(ctx, q, SearchLimit)
	return topics, errors.Wrap(err, "searching topics")
}

func (svc *Service) CreateTopic(ctx context.Context, nt NewTopic) (Topic, error) {
	topic := Topic{
		ID:              uuid.New().String(),
		ClassID:         nt.ClassID,
		SubjectID:       nt.SubjectID,
		Title:           nt.Title,
		TitleHi:         nt.TitleHi,
		Content:         nt.Content,
		ContentHi:       nt.ContentHi,
		Formulas:        nonNil(nt.Formulas),
		Diagrams:        nonNil(nt.Diagrams),
		DurationMinutes: nt.DurationMinutes,
		CreatedAt:       core.NowFunc(),
	}
	topic, err := svc.repo.CreateTopic(ctx, topic)
	return topic, errors.Wrap(err, "creating topic")
}

func (svc *Service) Books(ctx context.Context) ([]Book, error) {
	books, err := svc.repo.QueryBooks(ctx)
	return books, errors.Wrap(err, "querying books")
}

func (svc *Service) Book(ctx context.Context, id string) (Book, error) {
	book, err := svc.repo.GetBookByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrBookNotFound {
			return Book{}, core.NewNotFoundError("Book")
		}
		return Book{}, errors.Wrap(err, "finding book")
	}
	return book, nil
}

func (svc *Service) CreateBook(ctx context.Context, nb NewBook) (Book, error) {
	book := Book{
		ID:            uuid.New().String(),
		ClassID:       nb.ClassID,
		Title:         nb.Title,
		TitleHi:       nb.TitleHi,
		Description:   nb.Description,
		DescriptionHi: nb.DescriptionHi,
		Price:         nb.Price,
		Image:         nb.Image,
		Pages:         nb.Pages,
		Author:        nb.Author,
		CreatedAt:     core.NowFunc(),
	}
	book, err := svc.repo.CreateBook(ctx, book)
	return book, errors.Wrap(err, "creating book")
}

func (svc *Service) MockTests(ctx context.Context) ([]MockTest, error) {
	tests, err := svc.repo.QueryMockTests(ctx)
	return tests, errors.Wrap(err, "querying mock tests")
}

func (svc *Service) Bookmarks(ctx context.Context, userID string) ([]Bookmark, error) {
	bms, err := svc.repo.QueryBookmarksByUser(ctx, userID)
	return bms, errors.Wrap(err, "querying bookmarks")
}

// AddBookmark bookmarks a topic for userID. The topic is not required to exist.
func (svc *Service) AddBookmark(ctx context.Context, userID string, nb NewBookmark) (Bookmark, error) {
	bm := Bookmark{
		ID:        uuid.New().String(),
		UserID:    userID,
		TopicID:   nb.TopicID,
		Title:     nb.Title,
		CreatedAt: core.NowFunc(),
	}
	bm, err := svc.repo.CreateBookmark(ctx, bm)
	return bm, errors.Wrap(err, "creating bookmark")
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
