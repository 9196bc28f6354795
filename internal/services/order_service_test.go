package services_test

import (
	"testing"
	"time"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderServiceFixture(t *testing.T, cart *models.Cart, user *models.User) (*services.OrderService, *repositories.MockOrderRepository, *repositories.MockCartRepository) {
	t.Helper()
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := newSeededCartRepo(t, cart)
	userRepo := new(MockUserRepository)
	if user != nil {
		userRepo.On("GetByID", user.ID).Return(user, nil)
	} else {
		userRepo.On("GetByID", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	}
	return services.NewOrderService(orderRepo, cartRepo, userRepo, nil), orderRepo, cartRepo
}

func testUser() *models.User {
	return &models.User{ID: "user-1", Username: "tester", Email: "t@example.com", Phone: "+91 98765 43210"}
}

func testCart() *models.Cart {
	apple := &models.Product{ID: "apple", Name: "Apple", Price: dec(50)}
	bread := &models.Product{ID: "bread", Name: "Bread", Price: dec(30)}
	return &models.Cart{
		UserID: "user-1",
		Items: []models.CartItem{
			{ProductID: "apple", Quantity: 2, Product: apple},
			{ProductID: "bread", Quantity: 1, IsSavedForLater: true, Product: bread},
		},
		Total: dec(100),
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	service, orderRepo, cartRepo := newOrderServiceFixture(t, testCart(), testUser())

	order, link, err := service.PlaceOrder("user-1", "12 Main St")
	require.NoError(t, err)

	// The order snapshots only the active items, priced at order time.
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Apple", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Items[0].Price.Equal(dec(50)))
	assert.True(t, order.Total.Equal(dec(100)), "expected 100, got %s", order.Total)
	assert.Equal(t, models.OrderStatusOrdered, order.Status)
	assert.Equal(t, "12 Main St", order.Address)
	assert.Equal(t, "+91 98765 43210", order.Phone)
	assert.WithinDuration(t, time.Now(), order.OrderDate, 5*time.Second)

	// Notification link targets the user's phone, digits only.
	assert.Contains(t, link, "wa.me/919876543210")
	assert.Contains(t, link, "?text=")

	// The order was persisted.
	stored, err := orderRepo.GetByID(order.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(dec(100)))

	// The cart keeps only its saved-for-later items and resets to zero.
	cart, err := cartRepo.GetByUserID("user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "bread", cart.Items[0].ProductID)
	assert.True(t, cart.Items[0].IsSavedForLater)
	assert.True(t, cart.Total.IsZero())
}

func TestOrderService_PlaceOrder_TotalFrozenAfterPriceChange(t *testing.T) {
	cart := testCart()
	service, orderRepo, _ := newOrderServiceFixture(t, cart, testUser())

	order, _, err := service.PlaceOrder("user-1", "12 Main St")
	require.NoError(t, err)

	// A later catalog price change must not touch the historical order.
	cart.Items[0].Product.Price = dec(500)
	stored, err := orderRepo.GetByID(order.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(dec(100)))
	assert.True(t, stored.Items[0].Price.Equal(dec(50)))
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	service, orderRepo, _ := newOrderServiceFixture(t, nil, testUser())

	_, _, err := service.PlaceOrder("user-1", "12 Main St")
	assert.ErrorIs(t, err, services.ErrCartEmpty)

	orders, err := orderRepo.ListByUser("user-1")
	require.NoError(t, err)
	assert.Empty(t, orders, "no order may be created from an empty cart")
}

func TestOrderService_PlaceOrder_AllItemsSavedForLater(t *testing.T) {
	bread := &models.Product{ID: "bread", Name: "Bread", Price: dec(30)}
	cart := &models.Cart{
		UserID: "user-1",
		Items: []models.CartItem{
			{ProductID: "bread", Quantity: 1, IsSavedForLater: true, Product: bread},
		},
	}
	service, orderRepo, _ := newOrderServiceFixture(t, cart, testUser())

	_, _, err := service.PlaceOrder("user-1", "12 Main St")
	assert.ErrorIs(t, err, services.ErrNoOrderableItems)

	orders, err := orderRepo.ListByUser("user-1")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrder_UserNotFound(t *testing.T) {
	service, _, _ := newOrderServiceFixture(t, testCart(), nil)

	_, _, err := service.PlaceOrder("user-1", "12 Main St")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestCanCancel_WindowBoundary(t *testing.T) {
	now := time.Now()
	order := &models.Order{Status: models.OrderStatusOrdered, OrderDate: now.Add(-30 * time.Minute)}

	// Exactly 30:00 elapsed is still cancellable (inclusive boundary).
	ok, reason := services.CanCancel(order, now)
	assert.True(t, ok)
	assert.Empty(t, reason)

	// One second past the window is not.
	ok, reason = services.CanCancel(order, now.Add(time.Second))
	assert.False(t, ok)
	assert.Equal(t, "Order cancellation window has expired", reason)
}

func TestCanCancel_TerminalStatuses(t *testing.T) {
	now := time.Now()

	ok, reason := services.CanCancel(&models.Order{Status: models.OrderStatusCancelled, OrderDate: now}, now)
	assert.False(t, ok)
	assert.Equal(t, "Order is already cancelled", reason)

	// Delivered orders are never cancellable, even inside the window.
	ok, reason = services.CanCancel(&models.Order{Status: models.OrderStatusDelivered, OrderDate: now}, now)
	assert.False(t, ok)
	assert.Equal(t, "Delivered orders cannot be cancelled", reason)
}

func seedOrder(t *testing.T, repo *repositories.MockOrderRepository, status string, age time.Duration) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID: "user-1",
		Items: []models.OrderItem{
			{Name: "Apple", Quantity: 2, Price: dec(50)},
		},
		Total:     dec(100),
		Address:   "12 Main St",
		Phone:     "+91 98765 43210",
		Status:    status,
		OrderDate: time.Now().Add(-age),
	}
	require.NoError(t, repo.Create(order))
	return order
}

func TestOrderService_CancelOrder(t *testing.T) {
	service, orderRepo, _ := newOrderServiceFixture(t, nil, testUser())
	order := seedOrder(t, orderRepo, models.OrderStatusOrdered, 10*time.Minute)

	cancelled, link, err := service.CancelOrder("user-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Contains(t, link, "wa.me/919876543210")

	stored, err := orderRepo.GetByID(order.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, stored.Status)

	// Cancelling twice is a conflict, not a missing order.
	_, _, err = service.CancelOrder("user-1", order.ID)
	assert.ErrorIs(t, err, services.ErrOrderCancelled)
}

func TestOrderService_CancelOrder_WindowExpired(t *testing.T) {
	service, orderRepo, _ := newOrderServiceFixture(t, nil, testUser())
	order := seedOrder(t, orderRepo, models.OrderStatusOrdered, 31*time.Minute)

	_, _, err := service.CancelOrder("user-1", order.ID)
	assert.ErrorIs(t, err, services.ErrCancelWindowClosed)

	stored, err := orderRepo.GetByID(order.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusOrdered, stored.Status, "status must not change on rejected cancel")
}

func TestOrderService_CancelOrder_Delivered(t *testing.T) {
	service, orderRepo, _ := newOrderServiceFixture(t, nil, testUser())
	order := seedOrder(t, orderRepo, models.OrderStatusDelivered, 5*time.Minute)

	_, _, err := service.CancelOrder("user-1", order.ID)
	assert.ErrorIs(t, err, services.ErrOrderDelivered)
}

func TestOrderService_CancelOrder_NotFoundOrForeign(t *testing.T) {
	service, orderRepo, _ := newOrderServiceFixture(t, nil, testUser())
	order := seedOrder(t, orderRepo, models.OrderStatusOrdered, time.Minute)

	_, _, err := service.CancelOrder("user-1", "no-such-order")
	assert.ErrorIs(t, err, services.ErrOrderNotFound)

	// Another user's order behaves like a missing one.
	_, _, err = service.CancelOrder("user-2", order.ID)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestOrderService_CheckCancellable(t *testing.T) {
	service, orderRepo, _ := newOrderServiceFixture(t, nil, testUser())
	fresh := seedOrder(t, orderRepo, models.OrderStatusOrdered, time.Minute)
	stale := seedOrder(t, orderRepo, models.OrderStatusOrdered, time.Hour)

	ok, reason, err := service.CheckCancellable("user-1", fresh.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason, err = service.CheckCancellable("user-1", stale.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Order cancellation window has expired", reason)

	_, _, err = service.CheckCancellable("user-1", "no-such-order")
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestOrderService_GetOrderHistory_NewestFirst(t *testing.T) {
	service, orderRepo, _ := newOrderServiceFixture(t, nil, testUser())
	d1 := seedOrder(t, orderRepo, models.OrderStatusOrdered, 3*time.Hour)
	d2 := seedOrder(t, orderRepo, models.OrderStatusOrdered, 2*time.Hour)
	d3 := seedOrder(t, orderRepo, models.OrderStatusOrdered, time.Hour)

	orders, err := service.GetOrderHistory("user-1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, d3.ID, orders[0].ID)
	assert.Equal(t, d2.ID, orders[1].ID)
	assert.Equal(t, d1.ID, orders[2].ID)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	service, orderRepo, _ := newOrderServiceFixture(t, nil, testUser())
	order := seedOrder(t, orderRepo, models.OrderStatusOrdered, time.Minute)

	require.NoError(t, service.UpdateOrderStatus("user-1", order.ID, models.OrderStatusShipped))
	stored, err := orderRepo.GetByID(order.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)

	// Unknown statuses are rejected, and cancellation must go through the
	// cancel endpoint so the window policy applies.
	assert.ErrorIs(t, service.UpdateOrderStatus("user-1", order.ID, "teleported"), services.ErrInvalidOrderStatus)
	assert.ErrorIs(t, service.UpdateOrderStatus("user-1", order.ID, models.OrderStatusCancelled), services.ErrInvalidOrderStatus)

	// Delivered and cancelled are terminal.
	require.NoError(t, service.UpdateOrderStatus("user-1", order.ID, models.OrderStatusDelivered))
	assert.ErrorIs(t, service.UpdateOrderStatus("user-1", order.ID, models.OrderStatusShipped), services.ErrOrderStatusFinal)
}
