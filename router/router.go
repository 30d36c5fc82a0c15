package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andrelmbraga/barraquinha/controllers"
	"github.com/andrelmbraga/barraquinha/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Fotos dos itens do cardápio
	r.Static("/uploads", "public/uploads")

	healthCtrl := controllers.NewHealthController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuItemCtrl := controllers.NewMenuItemController(db)
	orderCtrl := controllers.NewOrderController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/health", healthCtrl.Health)

	// Cardápio público
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menu-items", menuItemCtrl.GetAllMenuItems)
	r.GET("/menu-items/:item_id", menuItemCtrl.GetMenuItemByID)

	// Cliente cria e acompanha o próprio pedido (sem login)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/orders/:order_id/status", orderCtrl.GetOrderStatus)

	// Login do admin com rate limit mais rígido
	login := r.Group("/")
	login.Use(middlewares.NewStrictRateLimiter())
	{
		login.POST("/admin/login", adminCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AdminAuthMiddleware())
	{
		auth.POST("/admin/logout", adminCtrl.Logout)
		auth.GET("/admin/dashboard/stats", adminCtrl.GetDashboardStats)

		// Fila de trabalho do balcão (poll de 2s)
		auth.GET("/barman/orders", orderCtrl.GetBarmanQueue)

		// PEDIDOS
		auth.GET("/admin/orders", orderCtrl.GetAllOrders)
		auth.GET("/admin/orders/feed", orderCtrl.GetOrderFeed)
		auth.PATCH("/admin/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		auth.DELETE("/admin/orders/:order_id", orderCtrl.DeleteOrder)

		// CATEGORIAS
		auth.POST("/admin/categories", categoryCtrl.CreateCategory)
		auth.PATCH("/admin/categories/:cat_id", categoryCtrl.UpdateCategory)
		auth.DELETE("/admin/categories/:cat_id", categoryCtrl.DeleteCategory)

		// ITENS DO CARDÁPIO
		auth.POST("/admin/menu-items", menuItemCtrl.CreateMenuItem)
		auth.PATCH("/admin/menu-items/:item_id", menuItemCtrl.UpdateMenuItem)
		auth.DELETE("/admin/menu-items/:item_id", menuItemCtrl.DeleteMenuItem)

		// UPLOAD de imagens
		auth.POST("/admin/upload", controllers.UploadImage)
	}

	return r
}
