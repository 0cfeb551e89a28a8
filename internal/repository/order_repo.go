package repository

import (
	"errors"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/apperr"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardStats is the point-in-time aggregate snapshot for the admin
// control surface. Computed fresh on every call, never cached.
type DashboardStats struct {
	InventoryUnits  int64   `json:"inventoryUnits"`
	InventoryValue  float64 `json:"inventoryValue"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	CancelledOrders int64   `json:"cancelledOrders"`
}

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByUser(userID uuid.UUID) ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	TransitionStatus(tx *gorm.DB, id uuid.UUID, from, to model.OrderStatus) error
	GetDashboardStats() (*DashboardStats, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create accepts a tx handle so the order insert can share a transaction
// with the stock decrement.
func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(order).Error
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("User").Preload("Product").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Product").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("User").Preload("Product").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order not found")
	}
	return &order, err
}

// TransitionStatus moves an order from one status to another in a single
// conditional update, so a terminal status can never be overwritten even
// under concurrent admin actions.
func (r *orderRepo) TransitionStatus(tx *gorm.DB, id uuid.UUID, from, to model.OrderStatus) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := tx.Model(&model.Order{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return apperr.NotFound("order not found")
		}
		return apperr.Validation("only pending orders can change status")
	}
	return nil
}

func (r *orderRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	// Inventory side: SUM over all products
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock), 0)").Scan(&stats.InventoryUnits).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock * price), 0)").Scan(&stats.InventoryValue).Error; err != nil {
		return nil, err
	}

	// Sales side
	if err := r.db.Model(&model.Order{}).
		Where("status = ?", model.StatusCompleted).
		Select("COALESCE(SUM(total_price), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Order{}).
		Where("status <> ?", model.StatusCancelled).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Order{}).
		Where("status = ?", model.StatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Order{}).
		Where("status = ?", model.StatusCancelled).
		Count(&stats.CancelledOrders).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
