package dummydb

import (
	"context"

	"github.com/trezcool/eduroot/core/analytics"
)

type AnalyticsRepository struct {
	db *DB
}

var _ analytics.Repository = (*AnalyticsRepository)(nil) // interface compliance check

func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (repo *AnalyticsRepository) CountUsers(context.Context) (int, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()
	return len(repo.db.user.rows), nil
}

func (repo *AnalyticsRepository) CountTopics(context.Context) (int, error) {
	repo.db.content.RLock()
	defer repo.db.content.RUnlock()
	return len(repo.db.content.topics), nil
}

func (repo *AnalyticsRepository) CountOrders(_ context.Context, status string) (int, error) {
	repo.db.order.RLock()
	defer repo.db.order.RUnlock()

	var count int
	for _, ord := range repo.db.order.rows {
		if ord.Status == status {
			count++
		}
	}
	return count, nil
}

func (repo *AnalyticsRepository) SumOrderAmounts(_ context.Context, status string) (float64, error) {
	repo.db.order.RLock()
	defer repo.db.order.RUnlock()

	var sum float64
	for _, ord := range repo.db.order.rows {
		if ord.Status == status {
			sum += ord.Amount
		}
	}
	return sum, nil
}
