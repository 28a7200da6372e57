package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core/content"
	"github.com/trezcool/eduroot/core/order"
	"github.com/trezcool/eduroot/core/quiz"
)

type studentAPI struct {
	quizSvc    *quiz.Service
	contentSvc *content.Service
	orderSvc   *order.Service
	validate   *validator.Validate
}

func registerStudentAPI(
	g *echo.Group,
	auth echo.MiddlewareFunc,
	quizSvc *quiz.Service,
	contentSvc *content.Service,
	orderSvc *order.Service,
	validate *validator.Validate,
) {
	api := studentAPI{
		quizSvc:    quizSvc,
		contentSvc: contentSvc,
		orderSvc:   orderSvc,
		validate:   validate,
	}

	sg := g.Group("/student", auth)
	sg.GET("/progress", api.progress)
	sg.GET("/bookmarks", api.bookmarks)
	sg.POST("/bookmarks", api.addBookmark)
	sg.GET("/purchases", api.purchases)
}

// Handlers

func (api *studentAPI) progress(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	results, err := api.quizSvc.Progress(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing progress")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"progress": results})
}

func (api *studentAPI) bookmarks(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	bookmarks, err := api.contentSvc.Bookmarks(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing bookmarks")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"bookmarks": bookmarks})
}

func (api *studentAPI) addBookmark(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data content.NewBookmark
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBookmark")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if _, err = api.contentSvc.AddBookmark(ctx.Request().Context(), usr.ID, data); err != nil {
		return errors.Wrap(err, "adding bookmark")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Bookmark added"})
}

func (api *studentAPI) purchases(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	orders, err := api.orderSvc.Purchases(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing purchases")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"purchases": orders})
}
