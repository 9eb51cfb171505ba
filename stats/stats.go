// Package stats folds products and orders into the admin dashboard summary.
package stats

import (
	"sort"
	"time"

	"storefront/models"
	"storefront/pricing"
)

// RecentLimit is how many orders the dashboard lists.
const RecentLimit = 5

// Aggregate computes dashboard figures as of now. Revenue counts every order
// regardless of status.
func Aggregate(products []models.Product, orders []models.Order, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		RecentOrders:  []models.RecentOrder{},
	}

	for _, p := range products {
		if p.Stock < models.LowStockThreshold {
			stats.LowStockProducts++
		}
	}

	year, month, _ := now.Date()
	revenue := make([]float64, 0, len(orders))
	monthly := make([]float64, 0, len(orders))
	for _, o := range orders {
		revenue = append(revenue, o.Total)
		if o.Status == models.StatusPending {
			stats.PendingOrders++
		}
		y, m, _ := o.CreatedAt.In(now.Location()).Date()
		if y == year && m == month {
			monthly = append(monthly, o.Total)
		}
	}
	stats.TotalRevenue = pricing.Sum(revenue...)
	stats.RevenueThisMonth = pricing.Sum(monthly...)

	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > RecentLimit {
		sorted = sorted[:RecentLimit]
	}
	for i := range sorted {
		o := &sorted[i]
		stats.RecentOrders = append(stats.RecentOrders, models.RecentOrder{
			ID:           o.ID,
			OrderID:      o.OrderID,
			CustomerName: o.CustomerName(),
			Total:        o.Total,
			Status:       o.Status,
			Date:         o.CreatedAt,
		})
	}
	return stats
}
