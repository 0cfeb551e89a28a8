package handler

import (
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/middleware"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// PlaceOrder creates an order for the caller.
// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var req model.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor, _ := middleware.ActorFromCtx(c)
	order, err := h.service.PlaceOrder(actor, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Order placed successfully", "data": order})
}

// GetAllOrders lists every order for the admin view.
// GET /api/v1/orders
func (h *OrderHandler) GetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// GetMyOrders lists the caller's own orders.
// GET /api/v1/orders/myorders
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	orders, err := h.service.ListMyOrders(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

type updateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateStatus moves a pending order to a terminal state.
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor, _ := middleware.ActorFromCtx(c)
	order, err := h.service.UpdateStatus(actor, id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
