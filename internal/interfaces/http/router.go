package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/auth"
	"github.com/jhoicas/Caja-api/internal/application/cashier"
	"github.com/jhoicas/Caja-api/internal/application/inventory"
	"github.com/jhoicas/Caja-api/internal/application/notification"
	"github.com/jhoicas/Caja-api/internal/application/report"
	"github.com/jhoicas/Caja-api/internal/application/restock"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	CheckoutUC     *cashier.CheckoutUseCase
	ProductUC      *inventory.ProductUseCase
	TransactionUC  *inventory.TransactionUseCase
	ReportUC       *report.UseCase
	RestockUC      *restock.UseCase
	NotificationUC *notification.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, verify exige token
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/verify", AuthMiddleware(deps.JWTSecret), authHandler.Verify)

	// FCM: bandeja y token del dispositivo (público salvo el envío)
	fcm := api.Group("/fcm")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	fcm.Get("/notificationList", notificationHandler.List)
	fcm.Post("/saveToken", notificationHandler.SaveToken)
	fcm.Get("/token", notificationHandler.Token)
	fcm.Put("/readNotification/:id", notificationHandler.ReadNotification)
	fcm.Post("/sendNotification", AuthMiddleware(deps.JWTSecret), notificationHandler.SendNotification)

	// Caja: cajero o admin
	cashierGroup := api.Group("/cashier",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin, entity.RoleCashier))
	cashierHandler := NewCashierHandler(deps.CheckoutUC)
	cashierGroup.Get("/showQris", cashierHandler.ShowQris)
	cashierGroup.Post("/reviewOrder", cashierHandler.ReviewOrder)
	cashierGroup.Post("/checkout", cashierHandler.Checkout)
	cashierGroup.Get("/receipt/:id", cashierHandler.Receipt)

	// Inventario: solo admin
	inventoryGroup := api.Group("/inventory",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin))
	inventoryHandler := NewInventoryHandler(deps.ProductUC, deps.TransactionUC)
	inventoryGroup.Get("/listProduct", inventoryHandler.ListProduct)
	inventoryGroup.Get("/detailProduct/:id", inventoryHandler.DetailProduct)
	inventoryGroup.Post("/addProduct", inventoryHandler.AddProduct)
	inventoryGroup.Put("/updateProduct/:id", inventoryHandler.UpdateProduct)
	inventoryGroup.Delete("/deleteProduct/:id", inventoryHandler.DeleteProduct)
	inventoryGroup.Delete("/deleteProduct", inventoryHandler.DeleteProducts)
	inventoryGroup.Get("/transactionList", inventoryHandler.TransactionList)
	inventoryGroup.Get("/transactionDetail/:id", inventoryHandler.TransactionDetail)
	inventoryGroup.Post("/purchaseTransaction", inventoryHandler.PurchaseTransaction)
	inventoryGroup.Post("/adjustmentTransaction", inventoryHandler.AdjustmentTransaction)

	// Reportes: solo admin
	reportGroup := api.Group("/report",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin))
	reportHandler := NewReportHandler(deps.ReportUC)
	reportGroup.Get("/dashboard", reportHandler.Dashboard)
	reportGroup.Get("/sales", reportHandler.Sales)
	reportGroup.Get("/profit", reportHandler.Profit)
	reportGroup.Get("/products", reportHandler.Products)
	reportGroup.Get("/restock", reportHandler.Restock)

	// Recomendaciones de reabastecimiento: solo admin
	restockGroup := api.Group("/restock-recommendations",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin))
	restockHandler := NewRestockHandler(deps.RestockUC)
	restockGroup.Get("/list", restockHandler.List)
}
