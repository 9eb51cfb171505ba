package controllers

import (
	"net/http"

	"storefront/response"
	"storefront/services"
)

// StatsController serves the admin dashboard figures
type StatsController struct {
	stats *services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// GetStats returns the dashboard summary (Admin only)
func (sc *StatsController) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	s, err := sc.stats.Dashboard(ctx)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{
		"totalProducts":    s.TotalProducts,
		"totalOrders":      s.TotalOrders,
		"totalRevenue":     s.TotalRevenue,
		"pendingOrders":    s.PendingOrders,
		"lowStockProducts": s.LowStockProducts,
		"revenueThisMonth": s.RevenueThisMonth,
		"recentOrders":     s.RecentOrders,
	})
}

// Health reports that the process is serving
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.M{})
}
