package routes

import (
	"log/slog"

	"github.com/BeeBeBong/Emenu/configs"
	"github.com/BeeBeBong/Emenu/controllers"
	"github.com/BeeBeBong/Emenu/middlewares"
	"github.com/BeeBeBong/Emenu/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, log *slog.Logger, hub *ws.NotifyHub) {
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.RequestLogger(log))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg.JWTSecret, cfg.JWTTTL)
	menuCtrl := controllers.NewMenuController(db)
	tableCtrl := controllers.NewTableController(db, cfg.ReserveHold, log)
	orderCtrl := controllers.NewOrderController(db)
	bookingCtrl := controllers.NewBookingController(db)
	dashCtrl := controllers.NewDashboardController(db)
	notifCtrl := controllers.NewNotificationController(db, hub)

	staff := middlewares.AuthMiddleware(cfg.JWTSecret, "admin", "staff")
	admin := middlewares.AuthMiddleware(cfg.JWTSecret, "admin")

	// Auth
	r.POST("/login", authCtrl.Login)
	r.GET("/api/auth/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Public: menu browsing, ordering from the table, bookings
	api := r.Group("/api")
	{
		api.GET("/menu", menuCtrl.ListItems)
		api.GET("/menu/category/:id", menuCtrl.ListItemsByCategory)
		api.GET("/categories", menuCtrl.ListCategories)
		api.GET("/items", menuCtrl.ListItems)
		api.GET("/items/:id/image", menuCtrl.ItemImage)

		api.GET("/tables", tableCtrl.List)
		api.GET("/tables/:id", tableCtrl.Get)
		api.POST("/tables/:id/reserve", tableCtrl.Reserve)
		api.POST("/tables/request-payment", notifCtrl.RequestPayment)

		api.POST("/orders/create", orderCtrl.Create)
		api.GET("/orders/table/:tableId", orderCtrl.GetByTable)

		api.POST("/booking/create", bookingCtrl.Create)
	}

	// Staff: kitchen and floor workflow
	apiStaff := r.Group("/api", staff)
	{
		apiStaff.GET("/orders", orderCtrl.List)
		apiStaff.GET("/orders/:id", orderCtrl.Detail)
		apiStaff.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)
		apiStaff.PATCH("/order-items/:id/served", orderCtrl.MarkServed)

		apiStaff.POST("/categories", menuCtrl.CreateCategory)
		apiStaff.PUT("/categories/:id", menuCtrl.UpdateCategory)
		apiStaff.DELETE("/categories/:id", menuCtrl.DeleteCategory)
		apiStaff.POST("/items", menuCtrl.CreateItem)
		apiStaff.PUT("/items/:id", menuCtrl.UpdateItem)
		apiStaff.DELETE("/items/:id", menuCtrl.DeleteItem)

		apiStaff.GET("/notifications", notifCtrl.List)
		apiStaff.PATCH("/notifications/:id/read", notifCtrl.MarkRead)

		apiStaff.GET("/dashboard/stats", dashCtrl.Stats)
		apiStaff.GET("/revenues", dashCtrl.Revenues)
	}
	r.GET("/ws/notifications", staff, hub.HandleWebSocket)

	// Admin: settlement, cancellation, table/booking management
	apiAdmin := r.Group("/api", admin)
	{
		apiAdmin.POST("/tables", tableCtrl.Create)
		apiAdmin.POST("/tables/:id/checkout", orderCtrl.Checkout)
		apiAdmin.POST("/orders/cancel", orderCtrl.Cancel)

		apiAdmin.PATCH("/booking/:id/confirm", bookingCtrl.Confirm)
		apiAdmin.DELETE("/booking/delete/:id", bookingCtrl.Delete)
	}
}
