package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core/content"
)

type contentAPI struct {
	svc *content.Service
}

func registerContentAPI(g *echo.Group, svc *content.Service) {
	api := contentAPI{svc: svc}

	g.GET("/classes", api.classes)
	g.GET("/subjects/:class_id", api.subjects)
	g.GET("/topics/:subject_id", api.topics)
	g.GET("/topic/:topic_id", api.topic)
	g.GET("/search", api.search)
	g.GET("/mock-tests", api.mockTests)
	g.GET("/books", api.books)
	g.GET("/book/:book_id", api.book)
}

// Handlers

func (api *contentAPI) classes(ctx echo.Context) error {
	classes, err := api.svc.Classes(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"classes": classes})
}

func (api *contentAPI) subjects(ctx echo.Context) error {
	subjects, err := api.svc.Subjects(ctx.Request().Context(), ctx.Param("class_id"))
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"subjects": subjects})
}

func (api *contentAPI) topics(ctx echo.Context) error {
	topics, err := api.svc.Topics(ctx.Request().Context(), ctx.Param("subject_id"))
	if err != nil {
		return errors.Wrap(err, "listing topics")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"topics": topics})
}

func (api *contentAPI) topic(ctx echo.Context) error {
	topic, err := api.svc.Topic(ctx.Request().Context(), ctx.Param("topic_id"))
	if err != nil {
		return errors.Wrap(err, "retrieving topic")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"topic": topic})
}

func (api *contentAPI) search(ctx echo.Context) error {
	results, err := api.svc.Search(ctx.Request().Context(), ctx.QueryParam("q"))
	if err != nil {
		return errors.Wrap(err, "searching topics")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"results": results})
}

func (api *contentAPI) mockTests(ctx echo.Context) error {
	tests, err := api.svc.MockTests(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing mock tests")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"tests": tests})
}

func (api *contentAPI) books(ctx echo.Context) error {
	books, err := api.svc.Books(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing books")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"books": books})
}

func (api *contentAPI) book(ctx echo.Context) error {
	book, err := api.svc.Book(ctx.Request().Context(), ctx.Param("book_id"))
	if err != nil {
		return errors.Wrap(err, "retrieving book")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"book": book})
}
