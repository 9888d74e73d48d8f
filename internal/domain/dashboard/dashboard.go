// Package dashboard holds the aggregate reporting contract.
package dashboard

import "context"

// Stats is a point-in-time snapshot of the dataset. All fields are zero on an
// empty database, never absent. TotalRevenue sums the final amount (cents) of
// completed orders.
type Stats struct {
	TotalCustomers int64 `json:"totalCustomers"`
	TotalProducts  int64 `json:"totalProducts"`
	TotalOrders    int64 `json:"totalOrders"`
	PendingOrders  int64 `json:"pendingOrders"`
	TotalRevenue   int64 `json:"totalRevenue"`
}

// Repository computes dashboard statistics.
type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
}
