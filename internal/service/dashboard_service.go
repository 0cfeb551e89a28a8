package service

import (
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/repository"
)

// InventorySummary and SalesSummary mirror the JSON shape the admin
// dashboard consumes.
type InventorySummary struct {
	Units int64   `json:"units"`
	Value float64 `json:"value"`
}

type SalesSummary struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	CancelledOrders int64   `json:"cancelledOrders"`
}

type DashboardResponse struct {
	Inventory InventorySummary `json:"inventory"`
	Sales     SalesSummary     `json:"sales"`
}

type DashboardService interface {
	ComputeDashboard() (*DashboardResponse, error)
}

type dashboardService struct {
	orderRepo repository.OrderRepository
}

func NewDashboardService(orderRepo repository.OrderRepository) DashboardService {
	return &dashboardService{orderRepo: orderRepo}
}

// ComputeDashboard aggregates committed state on every call. This is an
// administrative control surface; no staleness window is acceptable, so
// there is deliberately no caching here.
func (s *dashboardService) ComputeDashboard() (*DashboardResponse, error) {
	stats, err := s.orderRepo.GetDashboardStats()
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Inventory: InventorySummary{
			Units: stats.InventoryUnits,
			Value: stats.InventoryValue,
		},
		Sales: SalesSummary{
			TotalRevenue:    stats.TotalRevenue,
			TotalOrders:     stats.TotalOrders,
			PendingOrders:   stats.PendingOrders,
			CancelledOrders: stats.CancelledOrders,
		},
	}, nil
}
