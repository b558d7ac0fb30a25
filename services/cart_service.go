package services

import (
	"context"
	"fmt"

	apperrors "checkout-service/errors"
	"checkout-service/models"
	"checkout-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CartService owns the mutable pre-checkout cart: item adds, quantity
// changes and removals. Item writes go through a conditional update keyed on
// the cart being ACTIVE, so a cart locked by a concurrent checkout rejects
// the mutation.
type CartService struct {
	carts     repository.CartRepository
	menuItems repository.MenuItemRepository
	cache     CartCacher
	logger    *zap.Logger
}

func NewCartService(
	carts repository.CartRepository,
	menuItems repository.MenuItemRepository,
	cache CartCacher,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		carts:     carts,
		menuItems: menuItems,
		cache:     cache,
		logger:    logger,
	}
}

// GetCart returns the user's cart, reading through the cache when present.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	if s.cache != nil {
		cart, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("Cart cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
		if cart != nil {
			return cart, nil
		}
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find cart for user %s: %w", userID, err)
	}
	if cart == nil {
		return nil, apperrors.ErrCartNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cart); err != nil {
			s.logger.Warn("Cart cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return cart, nil
}

// AddItem adds one unit of a menu item, creating the cart on the first add.
// All items in a cart must belong to the same restaurant.
func (s *CartService) AddItem(ctx context.Context, userID, restaurantID, menuItemID string) (*models.Cart, error) {
	menuItem, err := s.lookupMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if menuItem.AvailableQuantity < 1 {
		return nil, apperrors.ErrMenuItemOutOfStock
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find cart for user %s: %w", userID, err)
	}

	if cart == nil {
		line := models.CartItem{
			MenuItemID: menuItemID,
			Quantity:   1,
			Price:      menuItem.Price,
			TotalPrice: menuItem.Price,
		}
		cart = &models.Cart{
			RestaurantID: restaurantID,
			UserID:       userID,
			Items:        []models.CartItem{line},
		}
		cart.TotalAmount = cart.Total()

		id, createErr := s.carts.Create(ctx, cart)
		if createErr != nil {
			return nil, fmt.Errorf("create cart for user %s: %w", userID, createErr)
		}
		if oid, hexErr := primitive.ObjectIDFromHex(id); hexErr == nil {
			cart.ID = oid
		}
		s.invalidate(ctx, userID)
		return cart, nil
	}

	if cart.Status == models.CartStatusLocked {
		return nil, apperrors.ErrCartLocked
	}
	if cart.RestaurantID != restaurantID {
		return nil, apperrors.ErrDifferentRestaurant
	}

	if idx := findLine(cart.Items, menuItemID); idx >= 0 {
		cart.Items[idx].Quantity++
		cart.Items[idx].TotalPrice = cart.Items[idx].Price * float64(cart.Items[idx].Quantity)
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			MenuItemID: menuItemID,
			Quantity:   1,
			Price:      menuItem.Price,
			TotalPrice: menuItem.Price,
		})
	}

	return s.saveItems(ctx, cart)
}

// IncreaseItemQuantity adds one unit to an existing cart line.
func (s *CartService) IncreaseItemQuantity(ctx context.Context, userID, menuItemID string) (*models.Cart, error) {
	menuItem, err := s.lookupMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if menuItem.AvailableQuantity < 1 {
		return nil, apperrors.ErrMenuItemOutOfStock
	}

	cart, idx, err := s.cartLine(ctx, userID, menuItemID)
	if err != nil {
		return nil, err
	}

	cart.Items[idx].Quantity++
	cart.Items[idx].TotalPrice = cart.Items[idx].Price * float64(cart.Items[idx].Quantity)

	return s.saveItems(ctx, cart)
}

// DecreaseItemQuantity removes one unit from a cart line. A quantity-one
// line is dropped; dropping the last line deletes the cart and returns nil.
func (s *CartService) DecreaseItemQuantity(ctx context.Context, userID, menuItemID string) (*models.Cart, error) {
	cart, idx, err := s.cartLine(ctx, userID, menuItemID)
	if err != nil {
		return nil, err
	}

	if cart.Items[idx].Quantity > 1 {
		cart.Items[idx].Quantity--
		cart.Items[idx].TotalPrice = cart.Items[idx].Price * float64(cart.Items[idx].Quantity)
	} else {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}

	if len(cart.Items) == 0 {
		return nil, s.deleteEmptyCart(ctx, cart)
	}
	return s.saveItems(ctx, cart)
}

// RemoveItem drops a cart line entirely. Dropping the last line deletes the
// cart and returns nil.
func (s *CartService) RemoveItem(ctx context.Context, userID, menuItemID string) (*models.Cart, error) {
	cart, idx, err := s.cartLine(ctx, userID, menuItemID)
	if err != nil {
		return nil, err
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if len(cart.Items) == 0 {
		return nil, s.deleteEmptyCart(ctx, cart)
	}
	return s.saveItems(ctx, cart)
}

func (s *CartService) lookupMenuItem(ctx context.Context, menuItemID string) (*models.MenuItem, error) {
	menuItem, err := s.menuItems.FindByID(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("find menu item %s: %w", menuItemID, err)
	}
	if menuItem == nil {
		return nil, apperrors.ErrMenuItemNotFound
	}
	return menuItem, nil
}

// cartLine fetches the user's mutable cart and locates the line for a menu
// item.
func (s *CartService) cartLine(ctx context.Context, userID, menuItemID string) (*models.Cart, int, error) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("find cart for user %s: %w", userID, err)
	}
	if cart == nil {
		return nil, 0, apperrors.ErrCartNotFound
	}
	if cart.Status == models.CartStatusLocked {
		return nil, 0, apperrors.ErrCartLocked
	}
	idx := findLine(cart.Items, menuItemID)
	if idx < 0 {
		return nil, 0, apperrors.ErrItemNotInCart
	}
	return cart, idx, nil
}

func (s *CartService) saveItems(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	total := cart.Total()
	updated, err := s.carts.UpdateItems(ctx, cart.ID.Hex(), cart.Items, total)
	if err != nil {
		return nil, fmt.Errorf("update cart %s: %w", cart.ID.Hex(), err)
	}
	if !updated {
		// lost to a concurrent lock or delete
		return nil, apperrors.ErrCartUpdateFailed
	}
	cart.TotalAmount = total
	s.invalidate(ctx, cart.UserID)
	return cart, nil
}

func (s *CartService) deleteEmptyCart(ctx context.Context, cart *models.Cart) error {
	if _, err := s.carts.Delete(ctx, cart.ID.Hex()); err != nil {
		return fmt.Errorf("delete cart %s: %w", cart.ID.Hex(), err)
	}
	s.invalidate(ctx, cart.UserID)
	return nil
}

func (s *CartService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("Cart cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func findLine(items []models.CartItem, menuItemID string) int {
	for i, item := range items {
		if item.MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}
