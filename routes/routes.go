package routes

import (
	"checkout-service/cache"
	"checkout-service/controllers"
	"checkout-service/database"
	"checkout-service/events"
	"checkout-service/repository"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Deps carries the external clients the route tree is built from.
type Deps struct {
	DB        *mongo.Database
	TxRunner  database.TxRunner
	CartCache *cache.CartCache
	Events    *events.Publisher
	Logger    *zap.Logger
}

// Register wires repositories, services and controllers onto the router.
func Register(r *gin.Engine, deps Deps) {
	carts := repository.NewCartRepository(deps.DB)
	orders := repository.NewOrderRepository(deps.DB)
	payments := repository.NewPaymentRepository(deps.DB)
	menuItems := repository.NewMenuItemRepository(deps.DB)

	var cartCache services.CartCacher
	if deps.CartCache != nil {
		cartCache = deps.CartCache
	}
	var publisher services.EventPublisher
	if deps.Events != nil {
		publisher = deps.Events
	}

	cartSvc := services.NewCartService(carts, menuItems, cartCache, deps.Logger)
	paymentSvc := services.NewPaymentService(orders, payments, carts, deps.TxRunner, cartCache, publisher, deps.Logger)
	checkoutSvc := services.NewCheckoutService(carts, orders, payments, paymentSvc, deps.TxRunner, cartCache, publisher, deps.Logger)

	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)

	cart := r.Group("/cart")
	{
		cart.GET("/", cartCtrl.GetCart)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PUT("/items/increase", cartCtrl.IncreaseItemQuantity)
		cart.PUT("/items/decrease", cartCtrl.DecreaseItemQuantity)
		cart.DELETE("/items", cartCtrl.RemoveItem)
	}

	checkout := r.Group("/checkout")
	{
		checkout.POST("/", checkoutCtrl.PlaceOrder)
		checkout.POST("/cancel", checkoutCtrl.CancelCheckout)
	}

	paymentRoutes := r.Group("/payments")
	{
		paymentRoutes.POST("/request", paymentCtrl.GeneratePaymentRequest)
		paymentRoutes.POST("/complete", paymentCtrl.CompletePayment)
	}
}
