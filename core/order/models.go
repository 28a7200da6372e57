package order

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core"
)

// Statuses
const (
	StatusCreated   = "created"
	StatusCompleted = "completed"
)

const DefaultCurrency = "INR"

type Order struct {
	ID               string                   `json:"id"`
	UserID           string                   `json:"user_id"`
	GatewayOrderID   string                   `json:"razorpay_order_id,omitempty"`
	GatewayPaymentID string                   `json:"razorpay_payment_id,omitempty"`
	Amount           float64                  `json:"amount"`
	Currency         string                   `json:"currency"`
	Items            []map[string]interface{} `json:"items"`
	Status           string                   `json:"status"`
	CreatedAt        time.Time                `json:"created_at"`             // UTC
	CompletedAt      *time.Time               `json:"completed_at,omitempty"` // UTC
}

// MinorUnits converts the amount to the currency's minor units (eg. paise).
func (o Order) MinorUnits() int64 {
	return int64(math.Round(o.Amount * 100))
}

// NewOrder contains information needed to create an Order.
type NewOrder struct {
	Amount   float64                  `json:"amount" validate:"gt=0"`
	Currency string                   `json:"currency" validate:"omitempty,len=3"`
	Items    []map[string]interface{} `json:"items"`
}

func (no *NewOrder) Validate(validate *validator.Validate) error {
	no.Currency = core.CleanString(no.Currency)
	if no.Currency == "" {
		no.Currency = DefaultCurrency
	}
	if no.Items == nil {
		no.Items = []map[string]interface{}{}
	}
	return errors.Wrap(validate.Struct(no), "validating NewOrder")
}

// Checkout is what the client needs to open the gateway's payment form.
type Checkout struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
}

// Payment is posted by the client once the gateway accepted the payment.
type Payment struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
}

func (p *Payment) Validate(validate *validator.Validate) error {
	p.OrderID = core.CleanString(p.OrderID)
	p.PaymentID = core.CleanString(p.PaymentID)
	return errors.Wrap(validate.Struct(p), "validating Payment")
}
