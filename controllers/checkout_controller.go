package controllers

import (
	"net/http"

	"checkout-service/models"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	svc *services.CheckoutService
}

func NewCheckoutController(svc *services.CheckoutService) *CheckoutController {
	return &CheckoutController{svc: svc}
}

type placeOrderRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

type cancelCheckoutRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// PlaceOrder checks the cart out into a priced order snapshot
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := cc.svc.PlaceOrder(c, userID, models.DeliveryInfo{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		respondError(c, "Checkout", err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// CancelCheckout reverses a pending order back to an editable cart
func (cc *CheckoutController) CancelCheckout(c *gin.Context) {
	var req cancelCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := cc.svc.CancelCheckout(c, req.OrderID)
	if err != nil {
		respondError(c, "Cancel checkout", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
