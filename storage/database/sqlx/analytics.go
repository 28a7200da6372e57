package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core/analytics"
)

type AnalyticsRepository struct {
	db *sqlx.DB
}

var _ analytics.Repository = (*AnalyticsRepository)(nil) // interface compliance check

func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (repo *AnalyticsRepository) count(ctx context.Context, q string, args ...interface{}) (int, error) {
	var n int
	err := repo.db.GetContext(ctx, &n, q, args...)
	return n, err
}

func (repo *AnalyticsRepository) CountUsers(ctx context.Context) (int, error) {
	n, err := repo.count(ctx, "SELECT COUNT(*) FROM users")
	return n, errors.Wrap(err, "counting users")
}

func (repo *AnalyticsRepository) CountTopics(ctx context.Context) (int, error) {
	n, err := repo.count(ctx, "SELECT COUNT(*) FROM topics")
	return n, errors.Wrap(err, "counting topics")
}

func (repo *AnalyticsRepository) CountOrders(ctx context.Context, status string) (int, error) {
	n, err := repo.count(ctx, "SELECT COUNT(*) FROM orders WHERE status = $1", status)
	return n, errors.Wrap(err, "counting orders")
}

func (repo *AnalyticsRepository) SumOrderAmounts(ctx context.Context, status string) (float64, error) {
	var sum float64
	err := repo.db.GetContext(ctx, &sum, "SELECT COALESCE(SUM(amount), 0) FROM orders WHERE status = $1", status)
	return sum, errors.Wrap(err, "summing order amounts")
}
