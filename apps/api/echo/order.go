package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core/order"
)

type orderAPI struct {
	svc      *order.Service
	validate *validator.Validate
}

func registerOrderAPI(g *echo.Group, auth echo.MiddlewareFunc, svc *order.Service, validate *validator.Validate) {
	api := orderAPI{svc: svc, validate: validate}

	og := g.Group("/orders", auth)
	og.POST("/create", api.create)
	og.POST("/verify", api.verify)
}

// Handlers

func (api *orderAPI) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data order.NewOrder
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewOrder")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	checkout, err := api.svc.Create(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "creating order")
	}
	return ctx.JSON(http.StatusOK, checkout)
}

func (api *orderAPI) verify(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data order.Payment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Payment")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if err = api.svc.Verify(ctx.Request().Context(), usr, data); err != nil {
		return errors.Wrap(err, "verifying payment")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"status": "success", "message": "Payment verified"})
}
