package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core/analytics"
	"github.com/trezcool/eduroot/core/content"
)

type adminAPI struct {
	contentSvc   *content.Service
	analyticsSvc *analytics.Service
	validate     *validator.Validate
}

func registerAdminAPI(
	g *echo.Group,
	auth, admin echo.MiddlewareFunc,
	contentSvc *content.Service,
	analyticsSvc *analytics.Service,
	validate *validator.Validate,
) {
	api := adminAPI{
		contentSvc:   contentSvc,
		analyticsSvc: analyticsSvc,
		validate:     validate,
	}

	ag := g.Group("/admin", auth, admin)
	ag.POST("/topics", api.createTopic)
	ag.POST("/books", api.createBook)
	ag.GET("/analytics", api.analytics)
}

// Handlers

func (api *adminAPI) createTopic(ctx echo.Context) error {
	var data content.NewTopic
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTopic")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	topic, err := api.contentSvc.CreateTopic(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating topic")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Topic created", "id": topic.ID})
}

func (api *adminAPI) createBook(ctx echo.Context) error {
	var data content.NewBook
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBook")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	book, err := api.contentSvc.CreateBook(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating book")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Book created", "id": book.ID})
}

func (api *adminAPI) analytics(ctx echo.Context) error {
	sum, err := api.analyticsSvc.Summary(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing analytics")
	}
	return ctx.JSON(http.StatusOK, sum)
}
