package dummydb

import (
	"sync"

	"github.com/trezcool/eduroot/core/content"
	"github.com/trezcool/eduroot/core/order"
	"github.com/trezcool/eduroot/core/quiz"
	"github.com/trezcool/eduroot/core/user"
)

type (
	// DB is an in-memory store; each table has its own lock.
	DB struct {
		user    *userTable
		quiz    *quizTable
		content *contentTable
		order   *orderTable
	}

	userTable struct {
		sync.RWMutex
		rows []user.User
	}

	quizTable struct {
		sync.RWMutex
		quizzes []quiz.Quiz
		results []quiz.Result
	}

	contentTable struct {
		sync.RWMutex
		classes   []content.Class
		subjects  []content.Subject
		topics    []content.Topic
		books     []content.Book
		mockTests []content.MockTest
		bookmarks []content.Bookmark
	}

	orderTable struct {
		sync.RWMutex
		rows []order.Order
	}
)

func Open() *DB {
	return &DB{
		user:    new(userTable),
		quiz:    new(quizTable),
		content: new(contentTable),
		order:   new(orderTable),
	}
}

// Reset empties every table.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.rows = nil
	db.user.Unlock()

	db.quiz.Lock()
	db.quiz.quizzes, db.quiz.results = nil, nil
	db.quiz.Unlock()

	db.content.Lock()
	db.content.classes, db.content.subjects, db.content.topics = nil, nil, nil
	db.content.books, db.content.mockTests, db.content.bookmarks = nil, nil, nil
	db.content.Unlock()

	db.order.Lock()
	db.order.rows = nil
	db.order.Unlock()
}
