package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/delight-cuisine/controllers"
	"github.com/yeremiapane/delight-cuisine/kds"
	"github.com/yeremiapane/delight-cuisine/middlewares"
	"github.com/yeremiapane/delight-cuisine/services"
	"github.com/yeremiapane/delight-cuisine/utils"
)

type Options struct {
	Tokens     *utils.TokenManager
	Hub        *kds.Hub
	CORSOrigin string
	// requests per second per IP, 0 disables rate limiting
	RateLimit int
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if opts.Hub == nil {
		opts.Hub = kds.NewHub()
	}
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if opts.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(opts.RateLimit, opts.RateLimit).RateLimit())
	}

	// Inisialisasi service
	menuSvc := services.NewMenuService(db, opts.Hub)
	statusSvc := services.NewRestaurantStatusService(db, opts.Hub)
	orderStore := services.NewOrderStore(db)
	lifecycle := services.NewOrderLifecycle(services.NewOrderBuilder(menuSvc), orderStore, statusSvc, opts.Hub)
	userSvc := services.NewUserService(db, opts.Tokens)

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(userSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	orderCtrl := controllers.NewOrderController(lifecycle, orderStore)
	restaurantCtrl := controllers.NewRestaurantController(statusSvc)
	eventsCtrl := controllers.NewEventsController(opts.Hub, opts.CORSOrigin)

	authRequired := middlewares.AuthMiddleware(opts.Tokens)
	authOptional := middlewares.OptionalAuthMiddleware(opts.Tokens)
	adminOnly := middlewares.RoleCheck(services.RoleAdmin)

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	api.GET("/health", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "Delight Cuisine API is healthy", gin.H{"service": "Delight Cuisine API"})
	})

	// Rate limiter untuk login/register
	authGroup := api.Group("/auth")
	{
		strict := middlewares.NewStrictRateLimiter().RateLimit()
		authGroup.POST("/register", strict, userCtrl.Register)
		authGroup.POST("/login", strict, userCtrl.Login)
		authGroup.POST("/refresh", userCtrl.Refresh)
		authGroup.GET("/me", authRequired, userCtrl.GetProfile)
	}

	// ----------------------------------------------------------------
	//                      MENU
	// ----------------------------------------------------------------
	menu := api.Group("/menu")
	{
		menu.GET("", authOptional, menuCtrl.GetMenuItems)
		menu.GET("/categories", menuCtrl.GetCategories)
		menu.GET("/:item_id", authOptional, menuCtrl.GetMenuItem)

		menu.POST("", authRequired, adminOnly, menuCtrl.CreateMenuItem)
		menu.PUT("/:item_id", authRequired, adminOnly, menuCtrl.UpdateMenuItem)
		menu.PATCH("/:item_id/toggle", authRequired, adminOnly, menuCtrl.ToggleMenuItem)
		menu.PATCH("/:item_id/restore", authRequired, adminOnly, menuCtrl.RestoreMenuItem)
		menu.DELETE("/:item_id", authRequired, adminOnly, menuCtrl.DeleteMenuItem)
	}

	// ----------------------------------------------------------------
	//                      ORDERS
	// ----------------------------------------------------------------
	orders := api.Group("/orders")
	{
		orders.GET("", authOptional, orderCtrl.GetOrders)
		orders.POST("", authRequired, orderCtrl.CreateOrder)
		orders.GET("/all", authRequired, adminOnly, orderCtrl.GetAllOrders)
		orders.GET("/:order_id", authRequired, orderCtrl.GetOrderByID)
		// customers may cancel here too, the lifecycle decides
		orders.PATCH("/:order_id/status", authRequired, orderCtrl.UpdateOrderStatus)
		orders.DELETE("/:order_id", authRequired, orderCtrl.CancelOrder)
	}

	// ----------------------------------------------------------------
	//                      RESTAURANT STATUS
	// ----------------------------------------------------------------
	restaurant := api.Group("/restaurant")
	{
		restaurant.GET("/status", restaurantCtrl.GetStatus)
		restaurant.PUT("/status", authRequired, adminOnly, restaurantCtrl.UpdateStatus)
		restaurant.POST("/toggle", authRequired, adminOnly, restaurantCtrl.ToggleStatus)
	}

	// WebSocket endpoint dengan middleware khusus
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(opts.Tokens), eventsCtrl.Stream)

	return r
}
