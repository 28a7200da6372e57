package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/eduroot/core/order"
)

const orderColumns = "id, user_id, gateway_order_id, gateway_payment_id, amount, currency, items, status, created_at, completed_at"

type orderRow struct {
	ID               string         `db:"id"`
	UserID           string         `db:"user_id"`
	GatewayOrderID   null.String    `db:"gateway_order_id"`
	GatewayPaymentID null.String    `db:"gateway_payment_id"`
	Amount           float64        `db:"amount"`
	Currency         string         `db:"currency"`
	Items            types.JSONText `db:"items"`
	Status           string         `db:"status"`
	CreatedAt        time.Time      `db:"created_at"`
	CompletedAt      null.Time      `db:"completed_at"`
}

func toOrderRow(ord order.Order) (orderRow, error) {
	items := ord.Items
	if items == nil {
		items = []map[string]interface{}{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return orderRow{}, errors.Wrap(err, "encoding items")
	}
	row := orderRow{
		ID:               ord.ID,
		UserID:           ord.UserID,
		GatewayOrderID:   null.NewString(ord.GatewayOrderID, ord.GatewayOrderID != ""),
		GatewayPaymentID: null.NewString(ord.GatewayPaymentID, ord.GatewayPaymentID != ""),
		Amount:           ord.Amount,
		Currency:         ord.Currency,
		Items:            data,
		Status:           ord.Status,
		CreatedAt:        ord.CreatedAt.UTC(),
	}
	if ord.CompletedAt != nil {
		row.CompletedAt = null.TimeFrom(ord.CompletedAt.UTC())
	}
	return row, nil
}

func (row orderRow) order() (order.Order, error) {
	ord := order.Order{
		ID:               row.ID,
		UserID:           row.UserID,
		GatewayOrderID:   row.GatewayOrderID.String,
		GatewayPaymentID: row.GatewayPaymentID.String,
		Amount:           row.Amount,
		Currency:         row.Currency,
		Status:           row.Status,
		CreatedAt:        row.CreatedAt.UTC(),
	}
	if row.CompletedAt.Valid {
		t := row.CompletedAt.Time.UTC()
		ord.CompletedAt = &t
	}
	if err := row.Items.Unmarshal(&ord.Items); err != nil {
		return order.Order{}, errors.Wrap(err, "decoding items")
	}
	return ord, nil
}

type OrderRepository struct {
	db *sqlx.DB
}

var _ order.Repository = (*OrderRepository)(nil) // interface compliance check

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (repo *OrderRepository) CreateOrder(ctx context.Context, ord order.Order) (order.Order, error) {
	row, err := toOrderRow(ord)
	if err != nil {
		return order.Order{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (:id, :user_id, :gateway_order_id, :gateway_payment_id, :amount, :currency, :items, :status,
			:created_at, :completed_at)`,
		row,
	)
	if err != nil {
		return order.Order{}, errors.Wrap(err, "inserting order")
	}
	return ord, nil
}

func (repo *OrderRepository) GetOrderByGatewayID(ctx context.Context, gatewayOrderID string) (order.Order, error) {
	var row orderRow
	err := repo.db.GetContext(ctx, &row, "SELECT "+orderColumns+" FROM orders WHERE gateway_order_id = $1", gatewayOrderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return order.Order{}, order.ErrNotFound
		}
		return order.Order{}, errors.Wrap(err, "selecting order")
	}
	return row.order()
}

func (repo *OrderRepository) UpdateOrder(ctx context.Context, ord order.Order) (order.Order, error) {
	row, err := toOrderRow(ord)
	if err != nil {
		return order.Order{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE orders
		SET gateway_order_id = :gateway_order_id, gateway_payment_id = :gateway_payment_id,
			status = :status, completed_at = :completed_at
		WHERE id = :id`,
		row,
	)
	if err != nil {
		return order.Order{}, errors.Wrap(err, "updating order")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return order.Order{}, order.ErrNotFound
	}
	return ord, nil
}

func (repo *OrderRepository) QueryOrders(ctx context.Context, userID, status string) ([]order.Order, error) {
	var rows []orderRow
	err := repo.db.SelectContext(ctx, &rows,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC",
		userID, status,
	)
	if err != nil {
		return nil, errors.Wrap(err, "selecting orders")
	}

	orders := make([]order.Order, 0, len(rows))
	for _, row := range rows {
		ord, err := row.order()
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, nil
}
