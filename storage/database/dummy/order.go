package dummydb

import (
	"context"

	"github.com/trezcool/eduroot/core/order"
)

type OrderRepository struct {
	db *orderTable
}

var _ order.Repository = (*OrderRepository)(nil) // interface compliance check

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db.order}
}

func (repo *OrderRepository) CreateOrder(_ context.Context, ord order.Order) (order.Order, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.rows = append(repo.db.rows, ord)
	return ord, nil
}

func (repo *OrderRepository) GetOrderByGatewayID(_ context.Context, gatewayOrderID string) (order.Order, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, ord := range repo.db.rows {
		if gatewayOrderID != "" && ord.GatewayOrderID == gatewayOrderID {
			return ord, nil
		}
	}
	return order.Order{}, order.ErrNotFound
}

func (repo *OrderRepository) UpdateOrder(_ context.Context, ord order.Order) (order.Order, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, o := range repo.db.rows {
		if o.ID == ord.ID {
			repo.db.rows[i] = ord
			return ord, nil
		}
	}
	return order.Order{}, order.ErrNotFound
}

func (repo *OrderRepository) QueryOrders(_ context.Context, userID, status string) ([]order.Order, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	orders := make([]order.Order, 0)
	for i := len(repo.db.rows) - 1; i >= 0; i-- { // newest first
		if ord := repo.db.rows[i]; ord.UserID == userID && ord.Status == status {
			orders = append(orders, ord)
		}
	}
	return orders, nil
}
