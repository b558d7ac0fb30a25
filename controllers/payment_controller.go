package controllers

import (
	"net/http"

	"checkout-service/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	svc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{svc: svc}
}

type paymentRequestRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

type completePaymentRequest struct {
	PaymentID   string `json:"paymentId" binding:"required"`
	PaymentMode string `json:"paymentMode" binding:"required"`
}

// GeneratePaymentRequest creates a fresh PENDING payment record for an order
func (pc *PaymentController) GeneratePaymentRequest(c *gin.Context) {
	var req paymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := pc.svc.GeneratePaymentRequest(c, req.OrderID)
	if err != nil {
		respondError(c, "Payment request generation", err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// CompletePayment selects the payment mode and confirms the owning order
func (pc *PaymentController) CompletePayment(c *gin.Context) {
	var req completePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := pc.svc.CompletePayment(c, req.PaymentID, req.PaymentMode)
	if err != nil {
		respondError(c, "Payment completion", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
