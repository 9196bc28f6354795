package services

import (
	"errors"
	"fmt"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComputeCartTotal computes a cart total from its items: the sum of
// effective price times quantity over every item not saved for later.
// Product prices are resolved through the given resolver so the dependency
// on the catalog stays explicit. An unresolvable product fails the whole
// computation rather than silently contributing zero.
func ComputeCartTotal(items []models.CartItem, resolve func(productID string) (*models.Product, error)) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		if item.IsSavedForLater {
			continue
		}
		product, err := resolve(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return decimal.Zero, fmt.Errorf("resolving product %s: %w", item.ProductID, ErrProductNotFound)
			}
			return decimal.Zero, fmt.Errorf("resolving product %s: %w", item.ProductID, err)
		}
		total = total.Add(product.EffectivePrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

// CartService handles business logic related to shopping carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart retrieves a user's cart. A user who has never added anything
// gets an empty, unpersisted cart back.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}, Total: decimal.Zero}, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem puts a product into the user's cart, creating the cart lazily on
// the first add. Adding a product already in the cart increases its
// quantity and moves it back out of saved-for-later.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cart = &models.Cart{UserID: userID}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
		}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].IsSavedForLater = false
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	return s.saveWithTotal(cart)
}

// RemoveItem drops a product from the user's cart.
func (s *CartService) RemoveItem(userID, productID string) (*models.Cart, error) {
	cart, err := s.loadCart(userID)
	if err != nil {
		return nil, err
	}

	remaining := cart.Items[:0]
	found := false
	for _, item := range cart.Items {
		if item.ProductID == productID {
			found = true
			continue
		}
		remaining = append(remaining, item)
	}
	if !found {
		return nil, ErrCartItemNotFound
	}
	cart.Items = remaining

	return s.saveWithTotal(cart)
}

// SetSavedForLater marks a cart item as saved for later, or moves it back
// into the active set. Saved items are excluded from the total and from
// checkout but survive it.
func (s *CartService) SetSavedForLater(userID, productID string, saved bool) (*models.Cart, error) {
	cart, err := s.loadCart(userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].IsSavedForLater = saved
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCartItemNotFound
	}

	return s.saveWithTotal(cart)
}

func (s *CartService) loadCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return cart, nil
}

// saveWithTotal recomputes the derived total from live product prices and
// persists items and total in the same save.
func (s *CartService) saveWithTotal(cart *models.Cart) (*models.Cart, error) {
	total, err := ComputeCartTotal(cart.Items, s.productRepo.GetByID)
	if err != nil {
		return nil, err
	}
	cart.Total = total
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart for user %s: %w", cart.UserID, err)
	}
	return cart, nil
}
