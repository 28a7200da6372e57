package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/eduroot/core/content"
)

func createTopic(t *testing.T, id, classID, subjectID, title string) content.Topic {
	t.Helper()
	topic, err := contentRepo.CreateTopic(context.Background(), content.Topic{
		ID:        id,
		ClassID:   classID,
		SubjectID: subjectID,
		Title:     title,
		Content:   "All about " + title,
		Formulas:  []string{},
		Diagrams:  []string{},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createTopic() failed: %v", err)
	}
	return topic
}

func createBook(t *testing.T, id, title string, price float64) content.Book {
	t.Helper()
	book, err := contentRepo.CreateBook(context.Background(), content.Book{
		ID:        id,
		Title:     title,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createBook() failed: %v", err)
	}
	return book
}

func Test_contentAPI(t *testing.T) {
	db.Reset()

	class9 := content.Class{ID: "class-9", Name: "Class 9", ClassNumber: 9}
	class10 := content.Class{ID: "class-10", Name: "Class 10", ClassNumber: 10}
	contentRepo.InsertClass(class9)
	contentRepo.InsertClass(class10)

	maths := content.Subject{ID: "maths-9", ClassID: class9.ID, Name: "Mathematics"}
	physics := content.Subject{ID: "physics-9", ClassID: class9.ID, Name: "Physics"}
	contentRepo.InsertSubject(maths)
	contentRepo.InsertSubject(physics)

	algebra := createTopic(t, "topic-1", class9.ID, maths.ID, "Linear Equations")
	geometry := createTopic(t, "topic-2", class9.ID, maths.ID, "Triangles")
	motion := createTopic(t, "topic-3", class9.ID, physics.ID, "Motion")

	mock := content.MockTest{ID: "mock-1", ClassID: class10.ID, Title: "Board Prep", TotalMarks: 80, QuestionsCount: 40}
	contentRepo.InsertMockTest(mock)

	book := createBook(t, "book-1", "NCERT Maths", 199.5)

	notFound := func(resource string) []byte {
		return marchallObj(t, httpErr{Detail: resource + " not found"})
	}

	tests := []httpTest{
		{name: "classes", path: "/api/classes", wantData: marchallObj(t, map[string]interface{}{"classes": []content.Class{class9, class10}})},
		{
			name: "subjects of class", path: "/api/subjects/class-9",
			wantData: marchallObj(t, map[string]interface{}{"subjects": []content.Subject{maths, physics}}),
		},
		{name: "subjects of unknown class", path: "/api/subjects/lol", wantData: []byte(`{"subjects": []}`)},
		{
			name: "topics of subject", path: "/api/topics/maths-9",
			wantData: marchallObj(t, map[string]interface{}{"topics": []content.TopicSummary{algebra.Summary(), geometry.Summary()}}),
		},
		{name: "topics of unknown subject", path: "/api/topics/lol", wantData: []byte(`{"topics": []}`)},
		{name: "topic", path: "/api/topic/topic-3", wantData: marchallObj(t, map[string]interface{}{"topic": motion})},
		{name: "unknown topic", path: "/api/topic/lol", wantCode: http.StatusNotFound, wantData: notFound("Topic")},
		{
			name: "search is case insensitive", path: "/api/search?q=TRI",
			wantData: marchallObj(t, map[string]interface{}{"results": []content.TopicSummary{geometry.Summary()}}),
		},
		{name: "search without match", path: "/api/search?q=calculus", wantData: []byte(`{"results": []}`)},
		{
			name: "search without query", path: "/api/search", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Detail: "Invalid data", Fields: map[string]string{"q": "this field is required"}}),
		},
		{
			name: "search with blank query", path: "/api/search?q=%20%20", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Detail: "Invalid data", Fields: map[string]string{"q": "this field is required"}}),
		},
		{name: "mock tests", path: "/api/mock-tests", wantData: marchallObj(t, map[string]interface{}{"tests": []content.MockTest{mock}})},
		{name: "books", path: "/api/books", wantData: marchallObj(t, map[string]interface{}{"books": []content.Book{book}})},
		{name: "book", path: "/api/book/book-1", wantData: marchallObj(t, map[string]interface{}{"book": book})},
		{name: "unknown book", path: "/api/book/lol", wantCode: http.StatusNotFound, wantData: notFound("Book")},
	}
	runHTTPTests(t, tests)
}

func Test_contentAPI_searchLimit(t *testing.T) {
	db.Reset()
	for i := 0; i < content.SearchLimit+5; i++ {
		createTopic(t, "", "class-9", "maths-9", "Algebra")
	}

	req, rec := newRequest(http.MethodGet, "/api/search?q=algebra")
	app.ServeHTTP(rec, req)

	var res struct {
		Results []content.TopicSummary `json:"results"`
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	unmarshal(t, rec.Body.Bytes(), &res)
	if len(res.Results) != content.SearchLimit {
		t.Errorf("failed! len(results) = %d; want %d", len(res.Results), content.SearchLimit)
	}
}
