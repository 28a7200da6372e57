package analytics

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core/order"
)

// Summary is the admin dashboard's aggregate view.
type Summary struct {
	TotalUsers   int     `json:"total_users"`
	TotalTopics  int     `json:"total_topics"`
	TotalOrders  int     `json:"total_orders"`  // completed only
	TotalRevenue float64 `json:"total_revenue"` // sum of completed orders' amount
}

type (
	Repository interface {
		CountUsers(ctx context.Context) (int, error)
		CountTopics(ctx context.Context) (int, error)
		CountOrders(ctx context.Context, status string) (int, error)
		SumOrderAmounts(ctx context.Context, status string) (float64, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Summary(ctx context.Context) (Summary, error) {
	var (
		sum Summary
		err error
	)
	if sum.TotalUsers, err = svc.repo.CountUsers(ctx); err != nil {
		return Summary{}, errors.Wrap(err, "counting users")
	}
	if sum.TotalTopics, err = svc.repo.CountTopics(ctx); err != nil {
		return Summary{}, errors.Wrap(err, "counting topics")
	}
	if sum.TotalOrders, err = svc.repo.CountOrders(ctx, order.StatusCompleted); err != nil {
		return Summary{}, errors.Wrap(err, "counting orders")
	}
	if sum.TotalRevenue, err = svc.repo.SumOrderAmounts(ctx, order.StatusCompleted); err != nil {
		return Summary{}, errors.Wrap(err, "summing order amounts")
	}
	return sum, nil
}
