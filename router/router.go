package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaikahouse/storefront/cart"
	"github.com/zaikahouse/storefront/controllers"
	"github.com/zaikahouse/storefront/middlewares"
	"github.com/zaikahouse/storefront/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Global limiter must be attached before any route is registered; gin
	// middleware only covers routes added after it. 50 req/s per IP.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// One cart manager shared by every controller that touches session carts.
	carts := cart.NewManager()
	payments := services.NewPaymentService()

	userCtrl := controllers.NewUserController(db, carts)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db, carts)
	orderCtrl := controllers.NewOrderController(db, carts, payments)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Browsing needs no login
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAvailableMenus)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

	// ----------------------------------------------------------------
	//                      CUSTOMER ROUTES
	// ----------------------------------------------------------------
	authed := r.Group("/")
	authed.Use(middlewares.AuthMiddleware())
	{
		authed.GET("/profile", userCtrl.GetProfile)
		authed.POST("/logout", userCtrl.Logout)

		authed.GET("/cart", cartCtrl.GetCart)
		authed.POST("/cart/items", cartCtrl.AddItem)
		authed.PATCH("/cart/items", cartCtrl.UpdateItem)
		authed.DELETE("/cart/items/:menu_id", cartCtrl.RemoveItem)
		authed.DELETE("/cart", cartCtrl.ClearCart)

		authed.POST("/checkout", orderCtrl.Checkout)
		authed.GET("/orders/my", orderCtrl.GetMyOrders)
		authed.PUT("/orders/:order_id/cancel", orderCtrl.CancelOrder)
		authed.POST("/orders/:order_id/reorder", cartCtrl.Reorder)
	}

	// ----------------------------------------------------------------
	//                      OWNER ROUTES
	// ----------------------------------------------------------------
	owner := r.Group("/owner")
	owner.Use(middlewares.AuthMiddleware(), middlewares.RequireOwner())
	{
		owner.GET("/menus", menuCtrl.GetAllMenus)
		owner.POST("/menus", menuCtrl.CreateMenu)
		owner.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		owner.PATCH("/menus/:menu_id/availability", menuCtrl.SetAvailability)
		owner.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

		owner.POST("/categories", categoryCtrl.CreateCategory)
		owner.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		owner.GET("/orders", orderCtrl.GetKitchenQueue)
		owner.PUT("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		owner.GET("/dashboard", orderCtrl.GetDashboardStats)
		owner.GET("/notifications", orderCtrl.GetNotifications)
	}

	// WebSocket endpoint with its own token auth (query param)
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.LiveHandler)
	}

	return r
}
