package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"bookhaven/internal/domain"
	applog "bookhaven/internal/log"
	"bookhaven/internal/repos"
	"bookhaven/internal/services"
	"bookhaven/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// POST /api/orders — guest checkout allowed; an authenticated caller's
// identity is attached as the owner.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in services.PlaceOrderInput
	if err := c.BodyParser(&in); err != nil {
		return failValidation(c, validate.FieldErrors{"Invalid request body"})
	}
	var userID string
	if u := currentUser(c); u != nil {
		userID = u.ID
	}

	o, err := h.Orders.Place(userID, in)
	if err != nil {
		var missing *services.BookMissingError
		var oos *services.OutOfStockError
		var errs validate.FieldErrors
		switch {
		case errors.Is(err, services.ErrNoItems), errors.Is(err, services.ErrMissingFields):
			return fail(c, fiber.StatusBadRequest, err.Error())
		case errors.As(err, &missing):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.As(err, &oos):
			return fail(c, fiber.StatusBadRequest, err.Error())
		case errors.As(err, &errs):
			return failValidation(c, errs)
		}
		applog.Error(c, "orders.place.fail", err, nil)
		return failInternal(c, "Error creating order", err)
	}
	applog.Audit(c, "orders.place", map[string]any{"order_id": o.ID, "total": o.Total})
	return created(c, "Order placed successfully", o)
}

// GET /api/orders/:id — an authenticated non-admin may only view an order
// they own; anonymous and admin callers may view any order by id.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	o, err := h.Orders.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, fiber.StatusNotFound, "Order not found")
		}
		applog.Error(c, "orders.get.fail", err, map[string]any{"order_id": id})
		return failInternal(c, "Error fetching order", err)
	}

	switch roleOf(c) {
	case domain.Anonymous, domain.Admin:
		// anonymous lookup relies on the order id being unguessable
	case domain.Customer:
		if o.UserID != "" && o.UserID != currentUser(c).ID {
			applog.Security(c, "access.denied.order", map[string]any{"order_id": id})
			return fail(c, fiber.StatusForbidden, "Not authorized to view this order")
		}
	}
	return ok(c, o)
}

// GET /api/orders/my-orders  (authenticated)
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	orders, err := h.Orders.ListByUser(currentUser(c).ID)
	if err != nil {
		applog.Error(c, "orders.mine.fail", err, nil)
		return failInternal(c, "Error fetching orders", err)
	}
	return okList(c, orders)
}

// GET /api/orders?status=&startDate=&endDate=  (admin)
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	f := repos.OrderFilter{
		Status:    c.Query("status"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	orders, err := h.Orders.ListAll(f)
	if err != nil {
		applog.Error(c, "orders.list.fail", err, nil)
		return failInternal(c, "Error fetching orders", err)
	}
	return okList(c, orders)
}

// PUT /api/orders/:id/status  (admin)
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return fail(c, fiber.StatusBadRequest, "Status is required")
	}
	o, err := h.Orders.UpdateStatus(c.Params("id"), body.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, fiber.StatusNotFound, "Order not found")
		}
		applog.Error(c, "orders.status.fail", err, map[string]any{"order_id": c.Params("id")})
		return failInternal(c, "Error updating order status", err)
	}
	applog.Audit(c, "orders.status", map[string]any{"order_id": o.ID, "status": body.Status})
	return okMsg(c, "Order status updated successfully", o)
}
