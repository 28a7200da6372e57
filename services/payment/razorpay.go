package paymentsvc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/eduroot/core"
	"github.com/trezcool/eduroot/core/order"
)

const ordersEndpoint = "/v1/orders"

// RazorpayGateway creates orders through the Razorpay REST API.
type RazorpayGateway struct {
	baseURL   string
	keyID     string
	keySecret string
}

var _ order.PaymentGateway = (*RazorpayGateway)(nil)

func NewRazorpayGateway(conf *core.Config) *RazorpayGateway {
	return &RazorpayGateway{
		baseURL:   strings.TrimSuffix(conf.Razorpay.BaseURL, "/"),
		keyID:     conf.Razorpay.KeyID,
		keySecret: conf.Razorpay.KeySecret,
	}
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt,omitempty"`
	PaymentCapture int    `json:"payment_capture"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (gw *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:         amount,
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding order request")
	}

	auth := base64.StdEncoding.EncodeToString([]byte(gw.keyID + ":" + gw.keySecret))
	req, err := rest.BuildRequestObject(rest.Request{
		Method:  rest.Post,
		BaseURL: gw.baseURL + ordersEndpoint,
		Headers: map[string]string{
			"Authorization": "Basic " + auth,
			"Content-Type":  "application/json",
		},
		Body: body,
	})
	if err != nil {
		return "", errors.Wrap(err, "building order request")
	}
	httpRes, err := rest.DefaultClient.MakeRequest(req.WithContext(ctx))
	if err != nil {
		return "", errors.Wrap(err, "sending order request")
	}
	res, err := rest.BuildResponse(httpRes)
	if err != nil {
		return "", errors.Wrap(err, "reading order response")
	}

	if res.StatusCode >= http.StatusBadRequest {
		var errRes errorResponse
		if jsonErr := json.Unmarshal([]byte(res.Body), &errRes); jsonErr == nil && errRes.Error.Description != "" {
			return "", errors.Errorf("%s (status %d)", errRes.Error.Description, res.StatusCode)
		}
		return "", errors.Errorf("unexpected status %d", res.StatusCode)
	}

	var created createOrderResponse
	if err = json.Unmarshal([]byte(res.Body), &created); err != nil {
		return "", errors.Wrap(err, "decoding order response")
	}
	if created.ID == "" {
		return "", errors.New("order response without id")
	}
	return created.ID, nil
}

// ConsoleGateway fakes the payment gateway for local development.
type ConsoleGateway struct {
	logger core.Logger
	newID  func() string
}

var _ order.PaymentGateway = (*ConsoleGateway)(nil)

func NewConsoleGateway(logger core.Logger, newID func() string) *ConsoleGateway {
	return &ConsoleGateway{logger: logger, newID: newID}
}

func (gw *ConsoleGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (string, error) {
	id := "order_" + gw.newID()
	gw.logger.Info(fmt.Sprintf("payment gateway: created %s for %d %s (receipt %s)", id, amount, currency, receipt))
	return id, nil
}
