package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/middleware"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *services.OrderService
	credentials  *services.CredentialService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, credentials *services.CredentialService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		credentials:  credentials,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. All routes
// require authentication; update and deletion additionally require the admin
// role.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders", middleware.AuthRequired(h.credentials))
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleGetOrders)

	admin := middleware.AdminRequired()
	orderRoutes.Put("/:id", admin, h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", admin, h.HandleDeleteOrder)
}

// CreateOrderRequest is the allow-list of fields accepted when placing an
// order.
type CreateOrderRequest struct {
	OrderItems []models.OrderItem `json:"order_items" validate:"required,min=1,dive"`
	TotalPrice float64            `json:"total_price" validate:"gte=0"`
}

// HandleCreateOrder places a new order owned by the authenticated user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	order, err := h.orderService.CreateOrder(userID, req.OrderItems, req.TotalPrice)
	if err != nil {
		log.Printf("Error creating order for user %s: %v", userID, err)
		if errors.Is(err, apperrors.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order creation failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders lists orders scoped by role: admins receive every order
// with line-item products resolved, other users only their own orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	isAdmin, _ := c.Locals("is_admin").(bool)

	var (
		orders []models.Order
		err    error
	)
	if isAdmin {
		orders, err = h.orderService.GetAllOrders()
	} else {
		orders, err = h.orderService.GetOrdersForUser(userID)
	}
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(orders)
}

// HandleUpdateOrder applies a partial update and returns the post-update
// order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var update services.OrderUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	order, err := h.orderService.UpdateOrder(orderID, update)
	if err != nil {
		log.Printf("Error updating order %s: %v", orderID, err)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return c.Status(fiber.StatusNotFound).SendString("Order not found")
		case errors.Is(err, apperrors.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order update failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order",
		})
	}
	return c.JSON(order)
}

// HandleDeleteOrder deletes an order and confirms with a message body.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if err := h.orderService.DeleteOrder(orderID); err != nil {
		log.Printf("Error deleting order %s: %v", orderID, err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Order not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete order",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Order deleted",
	})
}
