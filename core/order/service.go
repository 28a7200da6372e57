package order

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core"
	"github.com/trezcool/eduroot/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("Order not found")
)

type (
	// PaymentGateway registers orders with the payment processor.
	PaymentGateway interface {
		// CreateOrder returns the gateway's id for a new order of amount minor units.
		CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)
	}

	Repository interface {
		CreateOrder(ctx context.Context, ord Order) (Order, error)
		// GetOrderByGatewayID fails with ErrNotFound.
		GetOrderByGatewayID(ctx context.Context, gatewayOrderID string) (Order, error)
		UpdateOrder(ctx context.Context, ord Order) (Order, error)
		// QueryOrders lists the orders of userID with the given status, newest first.
		QueryOrders(ctx context.Context, userID, status string) ([]Order, error)
	}

	Service struct {
		repo    Repository
		gateway PaymentGateway
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, gateway PaymentGateway, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// Create records a new order for usr and registers it with the payment gateway.
// When the gateway fails the local order is kept in the created status without a gateway id.
func (svc *Service) Create(ctx context.Context, usr user.User, no NewOrder) (Checkout, error) {
	ord := Order{
		ID:        uuid.New().String(),
		UserID:    usr.ID,
		Amount:    no.Amount,
		Currency:  no.Currency,
		Items:     no.Items,
		Status:    StatusCreated,
		CreatedAt: core.NowFunc(),
	}
	ord, err := svc.repo.CreateOrder(ctx, ord)
	if err != nil {
		return Checkout{}, errors.Wrap(err, "creating order")
	}

	gatewayID, err := svc.gateway.CreateOrder(ctx, ord.MinorUnits(), ord.Currency, ord.ID)
	if err != nil {
		return Checkout{}, core.NewUpstreamError("Order creation failed", err)
	}

	ord.GatewayOrderID = gatewayID
	if _, err = svc.repo.UpdateOrder(ctx, ord); err != nil {
		return Checkout{}, errors.Wrap(err, "updating order")
	}

	return Checkout{
		OrderID:  gatewayID,
		Amount:   ord.Amount,
		Currency: ord.Currency,
		KeyID:    svc.conf.Razorpay.KeyID,
	}, nil
}

// Verify marks the order as completed with the payment id supplied by the client.
// The ids are trusted as given: neither the gateway signature nor the order owner are checked.
func (svc *Service) Verify(ctx context.Context, usr user.User, pmt Payment) error {
	ord, err := svc.repo.GetOrderByGatewayID(ctx, pmt.OrderID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewNotFoundError("Order")
		}
		return errors.Wrap(err, "finding order")
	}

	now := core.NowFunc()
	ord.Status = StatusCompleted
	ord.GatewayPaymentID = pmt.PaymentID
	ord.CompletedAt = &now
	if _, err = svc.repo.UpdateOrder(ctx, ord); err != nil {
		return errors.Wrap(err, "updating order")
	}

	svc.sendReceiptMail(usr, ord)
	return nil
}

// Purchases lists the completed orders of userID.
func (svc *Service) Purchases(ctx context.Context, userID string) ([]Order, error) {
	orders, err := svc.repo.QueryOrders(ctx, userID, StatusCompleted)
	return orders, errors.Wrap(err, "querying orders")
}

type receiptData struct {
	Name      string
	OrderID   string
	PaymentID string
	Amount    string
	Currency  string
}

func (svc *Service) sendReceiptMail(usr user.User, ord Order) {
	if svc.mailSvc == nil || usr.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Payment received",
		TemplateName: "receipt",
		TemplateData: receiptData{
			Name:      usr.Name,
			OrderID:   ord.GatewayOrderID,
			PaymentID: ord.GatewayPaymentID,
			Amount:    fmt.Sprintf("%.2f", ord.Amount),
			Currency:  ord.Currency,
		},
	})
}
