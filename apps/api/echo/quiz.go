package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core/quiz"
)

type quizAPI struct {
	svc      *quiz.Service
	validate *validator.Validate
}

func registerQuizAPI(g *echo.Group, auth echo.MiddlewareFunc, svc *quiz.Service, validate *validator.Validate) {
	api := quizAPI{svc: svc, validate: validate}

	qg := g.Group("/quiz")
	qg.POST("/submit", api.submit, auth)
	qg.GET("/:topic_id", api.retrieve)
}

// Handlers

func (api *quizAPI) retrieve(ctx echo.Context) error {
	qz, err := api.svc.GetByTopic(ctx.Request().Context(), ctx.Param("topic_id"))
	if err != nil {
		return errors.Wrap(err, "retrieving quiz")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"quiz": qz})
}

func (api *quizAPI) submit(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data quiz.Submission
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Submission")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	score, err := api.svc.Submit(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "submitting quiz")
	}
	return ctx.JSON(http.StatusOK, score)
}
