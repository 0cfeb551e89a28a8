package service

import (
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/apperr"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/repository"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/ws"
	"github.com/SodaPop-byte/Casa-Orencia-App/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	PlaceOrder(actor model.Actor, req *model.PlaceOrderRequest) (*model.Order, error)
	ListAllOrders() ([]model.Order, error)
	ListMyOrders(actor model.Actor) ([]model.Order, error)
	UpdateStatus(actor model.Actor, orderID uuid.UUID, newStatus model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	bus         ws.Broadcaster

	// RestockOnCancel is a product-owner decision, not an assumption:
	// when off (the default), cancelled orders leave stock untouched.
	restockOnCancel bool
}

func NewOrderService(oRepo repository.OrderRepository, pRepo repository.ProductRepository, db *gorm.DB, bus ws.Broadcaster, restockOnCancel bool) OrderService {
	return &orderService{
		orderRepo:       oRepo,
		productRepo:     pRepo,
		db:              db,
		bus:             bus,
		restockOnCancel: restockOnCancel,
	}
}

// PlaceOrder reserves stock and records the order as one transaction.
// The decrement runs first: a failed stock check aborts before any order
// row exists, and a failed insert rolls the decrement back, so an order
// exists iff its stock was reserved.
func (s *orderService) PlaceOrder(actor model.Actor, req *model.PlaceOrderRequest) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var (
		order   *model.Order
		product model.Product
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.DecrementStock(tx, req.ProductID, req.Quantity); err != nil {
			return err
		}

		// Re-read inside the tx: price for the totalPrice snapshot,
		// stock for the stockChanged payload.
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			return err
		}

		order = &model.Order{
			UserID:     actor.ID,
			ProductID:  product.ID,
			Quantity:   req.Quantity,
			TotalPrice: product.Price * float64(req.Quantity),
			Status:     model.StatusPending,
		}
		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}

	// Resolve purchaser and product for the event payload and response.
	resolved, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		resolved = order
	}

	s.bus.Emit(ws.EventStockChanged, &product)
	s.bus.Emit(ws.EventOrderCreated, resolved)
	return resolved, nil
}

func (s *orderService) ListAllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) ListMyOrders(actor model.Actor) ([]model.Order, error) {
	return s.orderRepo.FindByUser(actor.ID)
}

func (s *orderService) UpdateStatus(actor model.Actor, orderID uuid.UUID, newStatus model.OrderStatus) (*model.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Authorization("only admins can update order status")
	}
	if newStatus != model.StatusCompleted && newStatus != model.StatusCancelled {
		return nil, apperr.Validation("status must be Completed or Cancelled")
	}

	var restockedProduct *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.TransitionStatus(tx, orderID, model.StatusPending, newStatus); err != nil {
			return err
		}

		if newStatus == model.StatusCancelled && s.restockOnCancel {
			var o model.Order
			if err := tx.First(&o, "id = ?", orderID).Error; err != nil {
				return err
			}
			if err := s.productRepo.IncrementStock(tx, o.ProductID, o.Quantity); err != nil {
				// A missing product here means it was deleted after the
				// order was placed; the cancellation itself still stands.
				if apperr.KindOf(err) != apperr.KindNotFound {
					return err
				}
				return nil
			}
			var p model.Product
			if err := tx.First(&p, "id = ?", o.ProductID).Error; err != nil {
				return err
			}
			restockedProduct = &p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resolved, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}

	s.bus.Emit(ws.EventOrderStatusChanged, resolved)
	if restockedProduct != nil {
		s.bus.Emit(ws.EventStockChanged, restockedProduct)
	}
	return resolved, nil
}
