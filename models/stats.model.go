package models

import "time"

// RecentOrder is the dashboard projection of an order
type RecentOrder struct {
	ID           int       `json:"id"`
	OrderID      string    `json:"orderId"`
	CustomerName string    `json:"customerName"`
	Total        float64   `json:"total"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
}

// DashboardStats summarizes products and orders for the admin dashboard
type DashboardStats struct {
	TotalProducts    int           `json:"totalProducts"`
	TotalOrders      int           `json:"totalOrders"`
	TotalRevenue     float64       `json:"totalRevenue"`
	PendingOrders    int           `json:"pendingOrders"`
	LowStockProducts int           `json:"lowStockProducts"`
	RevenueThisMonth float64       `json:"revenueThisMonth"`
	RecentOrders     []RecentOrder `json:"recentOrders"`
}
