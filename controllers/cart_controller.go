package controllers

import (
	"context"
	"net/http"

	"checkout-service/models"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	svc *services.CartService
}

func NewCartController(svc *services.CartService) *CartController {
	return &CartController{svc: svc}
}

type addItemRequest struct {
	RestaurantID string `json:"restaurantId" binding:"required"`
	MenuItemID   string `json:"menuItemId" binding:"required"`
}

type cartItemRequest struct {
	MenuItemID string `json:"menuItemId" binding:"required"`
}

// GetCart returns the current cart for a user
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cart, err := cc.svc.GetCart(c, userID)
	if err != nil {
		respondError(c, "Get cart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// AddItem adds one unit of a menu item to the cart
func (cc *CartController) AddItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := cc.svc.AddItem(c, userID, req.RestaurantID, req.MenuItemID)
	if err != nil {
		respondError(c, "Add cart item", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart successfully", "cart": cart})
}

// IncreaseItemQuantity adds one unit to an existing cart line
func (cc *CartController) IncreaseItemQuantity(c *gin.Context) {
	cc.mutateLine(c, "Increase cart item quantity", cc.svc.IncreaseItemQuantity)
}

// DecreaseItemQuantity removes one unit from a cart line
func (cc *CartController) DecreaseItemQuantity(c *gin.Context) {
	cc.mutateLine(c, "Decrease cart item quantity", cc.svc.DecreaseItemQuantity)
}

// RemoveItem drops a cart line entirely
func (cc *CartController) RemoveItem(c *gin.Context) {
	cc.mutateLine(c, "Remove cart item", cc.svc.RemoveItem)
}

func (cc *CartController) mutateLine(c *gin.Context, operation string, mutate func(ctx context.Context, userID, menuItemID string) (*models.Cart, error)) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := mutate(c, userID, req.MenuItemID)
	if err != nil {
		respondError(c, operation, err)
		return
	}

	// a nil cart means the last line was removed and the cart deleted
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return "", false
	}
	return userID, true
}
