package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/pkg/rabbitmq"
	"kedai/pkg/whatsapp"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CancellationWindow is how long after placement an order may still be
// cancelled. The boundary is inclusive: exactly 30 minutes is cancellable.
const CancellationWindow = 30 * time.Minute

// Reasons returned by CanCancel when cancellation is not possible.
const (
	reasonAlreadyCancelled = "Order is already cancelled"
	reasonDelivered        = "Delivered orders cannot be cancelled"
	reasonWindowExpired    = "Order cancellation window has expired"
)

// CanCancel is the cancellation policy: a pure function of order status and
// elapsed time. It returns whether the order may be cancelled at the given
// moment and, when it may not, a human-readable reason.
func CanCancel(order *models.Order, now time.Time) (bool, string) {
	switch order.Status {
	case models.OrderStatusCancelled:
		return false, reasonAlreadyCancelled
	case models.OrderStatusDelivered:
		return false, reasonDelivered
	}
	if now.Sub(order.OrderDate) <= CancellationWindow {
		return true, ""
	}
	return false, reasonWindowExpired
}

// OrderService handles checkout, cancellation and order history.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	userRepo  repositories.UserRepository
	mqClient  *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		mqClient:  mqClient,
	}
}

// PlaceOrder converts the user's cart into an immutable order. The active
// items are snapshotted by name and effective price, the order total is
// computed from the snapshot, and the order is persisted together with the
// cart truncation in one transaction. Saved-for-later items survive in the
// cart; everything else is dropped and the cart total reset to zero.
// It returns the new order and a WhatsApp link carrying the order summary.
func (s *OrderService) PlaceOrder(userID, address string) (*models.Order, string, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCartEmpty
		}
		return nil, "", err
	}
	if len(cart.Items) == 0 {
		return nil, "", ErrCartEmpty
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	// Snapshot the active items. Name and price are copied by value so the
	// order stays untouched by later catalog changes.
	var orderItems []models.OrderItem
	total := decimal.Zero
	for _, item := range cart.ActiveItems() {
		if item.Product == nil {
			return nil, "", fmt.Errorf("cart item %s: %w", item.ProductID, ErrProductNotFound)
		}
		price := item.Product.EffectivePrice()
		orderItems = append(orderItems, models.OrderItem{
			Name:     item.Product.Name,
			Quantity: item.Quantity,
			Price:    price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if len(orderItems) == 0 {
		return nil, "", ErrNoOrderableItems
	}

	order := &models.Order{
		UserID:    userID,
		Items:     orderItems,
		Total:     total,
		Address:   address,
		Phone:     user.Phone,
		Status:    models.OrderStatusOrdered,
		OrderDate: time.Now(),
	}

	if err := s.orderRepo.CreateAndClearCart(order, cart); err != nil {
		return nil, "", fmt.Errorf("failed to place order: %w", err)
	}

	link := whatsapp.GenerateLink(user.Phone, buildOrderPlacedMessage(order))
	s.publishOrderEvent("order.placed", order)

	return order, link, nil
}

// CheckCancellable reports whether the given order can still be cancelled.
func (s *OrderService) CheckCancellable(userID, orderID string) (bool, string, error) {
	order, err := s.getOwnedOrder(userID, orderID)
	if err != nil {
		return false, "", err
	}
	ok, reason := CanCancel(order, time.Now())
	return ok, reason, nil
}

// CancelOrder cancels an order within the cancellation window. It re-runs
// the eligibility check, flips the status, and returns the updated order
// with a WhatsApp link confirming the cancellation.
func (s *OrderService) CancelOrder(userID, orderID string) (*models.Order, string, error) {
	order, err := s.getOwnedOrder(userID, orderID)
	if err != nil {
		return nil, "", err
	}

	switch order.Status {
	case models.OrderStatusCancelled:
		return nil, "", ErrOrderCancelled
	case models.OrderStatusDelivered:
		return nil, "", ErrOrderDelivered
	}
	now := time.Now()
	if now.Sub(order.OrderDate) > CancellationWindow {
		return nil, "", ErrCancelWindowClosed
	}

	if err := s.orderRepo.UpdateStatus(order.ID, models.OrderStatusCancelled); err != nil {
		return nil, "", fmt.Errorf("failed to cancel order %s: %w", order.ID, err)
	}
	order.Status = models.OrderStatusCancelled

	link := whatsapp.GenerateLink(order.Phone, buildOrderCancelledMessage(order, now))
	s.publishOrderEvent("order.cancelled", order)

	return order, link, nil
}

// GetOrderHistory retrieves all orders of a user, newest first.
func (s *OrderService) GetOrderHistory(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// UpdateOrderStatus moves an order through the fulfilment statuses.
// Cancelled and delivered orders are final, and cancellation itself only
// happens through CancelOrder so the window policy cannot be bypassed.
func (s *OrderService) UpdateOrderStatus(userID, orderID, status string) error {
	if !models.ValidOrderStatus(status) || status == models.OrderStatusCancelled {
		return fmt.Errorf("%w: %s", ErrInvalidOrderStatus, status)
	}

	order, err := s.getOwnedOrder(userID, orderID)
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusDelivered {
		return ErrOrderStatusFinal
	}

	if err := s.orderRepo.UpdateStatus(order.ID, status); err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", order.ID, err)
	}
	return nil
}

func (s *OrderService) getOwnedOrder(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// publishOrderEvent emits an order lifecycle event. Publishing is best
// effort: a broker failure is logged, never surfaced to the caller.
func (s *OrderService) publishOrderEvent(eventType string, order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	payload := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.Total,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.mqClient.PublishOrderEvent(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", eventType, order.ID, err)
	} else {
		log.Printf("Successfully published %s event for order %s", eventType, order.ID)
	}
}

func itemsList(items []models.OrderItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(lines, "\n")
}

func buildOrderPlacedMessage(order *models.Order) string {
	return fmt.Sprintf(`New Order:

Items:
%s

Total: Rs.%s
Shipping Address: %s
Contact: %s

Thank you for your order!`, itemsList(order.Items), order.Total.StringFixed(2), order.Address, order.Phone)
}

func buildOrderCancelledMessage(order *models.Order, now time.Time) string {
	return fmt.Sprintf(`Order Cancel Request:

Order ID: %s
Cancellation Time: %s

Cancelled Items:
%s

Total: Rs.%s

Your order has been cancelled successfully.`, order.ID, now.Format(time.RFC1123), itemsList(order.Items), order.Total.StringFixed(2))
}
