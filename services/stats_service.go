package services

import (
	"context"
	"time"

	"storefront/apperrors"
	"storefront/models"
	"storefront/repository"
	"storefront/stats"
)

// StatsService computes the admin dashboard
type StatsService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	now      func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(products repository.ProductRepository, orders repository.OrderRepository) *StatsService {
	return &StatsService{products: products, orders: orders, now: time.Now}
}

// Dashboard loads every product and order and aggregates them.
func (s *StatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	products, err := s.products.FindAll(ctx, "")
	if err != nil {
		return nil, apperrors.Backend("Failed to retrieve stats", err)
	}
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Backend("Failed to retrieve stats", err)
	}

	result := stats.Aggregate(products, orders, s.now())
	return &result, nil
}
