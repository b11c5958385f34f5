package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/samuelkabedi/SHOP-KABEDI/internal/apperrors"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/models"
	"github.com/samuelkabedi/SHOP-KABEDI/internal/repositories"
)

// EventPublisher publishes order lifecycle events. Satisfied by
// *rabbitmq.Client; a nil publisher disables publishing.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// CreateOrder creates a new order owned by userID. Every referenced product
// must exist and have sufficient stock; each line item snapshots the
// product's name and price at order time.
func (s *OrderService) CreateOrder(userID string, items []models.OrderItem, totalPrice float64) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item: %w", apperrors.ErrValidation)
	}

	processed := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", item.ProductID, apperrors.ErrValidation)
		}
		if product.CountInStock < item.Qty {
			return nil, fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d): %w",
				product.Name, item.Qty, product.CountInStock, apperrors.ErrValidation)
		}
		processed = append(processed, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Qty:       item.Qty,
			Price:     product.Price,
		})
	}

	order := &models.Order{
		UserID:     userID,
		Items:      processed,
		TotalPrice: totalPrice,
		Status:     models.StatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishEvent("order.created", order)
	return order, nil
}

// GetOrdersForUser returns the orders owned by a single user, line items
// unresolved.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetAllOrders returns every order with line-item products resolved. Admin
// scope only; the handler enforces the role check.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// OrderUpdate is the allow-list of fields an order update may change.
type OrderUpdate struct {
	Status *string `json:"status"`
}

// UpdateOrder applies the allow-listed fields and returns the post-update
// order. An unknown status is a validation failure.
func (s *OrderService) UpdateOrder(id string, update OrderUpdate) (*models.Order, error) {
	fields := map[string]interface{}{}
	if update.Status != nil {
		if !models.ValidOrderStatus(*update.Status) {
			return nil, fmt.Errorf("invalid order status %q: %w", *update.Status, apperrors.ErrValidation)
		}
		fields["status"] = *update.Status
	}

	order, err := s.orderRepo.Update(id, fields)
	if err != nil {
		return nil, err
	}
	s.publishEvent("order.updated", order)
	return order, nil
}

// DeleteOrder deletes an order by its ID.
func (s *OrderService) DeleteOrder(id string) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("order.deleted", order)
	return nil
}

// publishEvent sends an order lifecycle event. Publishing failures are
// logged, never surfaced to the caller.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.TotalPrice,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", routingKey, order.ID, err)
		return
	}
	if err := s.publisher.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
