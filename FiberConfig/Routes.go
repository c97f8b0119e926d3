package FiberConfig

import (
	"fmt"

	"PalkhiTrans/Apis"
	"PalkhiTrans/Controllers"
	"PalkhiTrans/Models"
	"PalkhiTrans/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	billHandler := Controllers.NewBillHandler(db)
	transferHandler := Controllers.NewTransferHandler(db)
	auditLogHandler := Controllers.NewAuditLogHandler(db)
	bookingHandler := Apis.NewBookingHandler(db)
	vehicleHandler := Apis.NewVehicleHandler(db)
	settingsHandler := Apis.NewSettingsHandler(db)

	api := app.Group("/api")

	// Auth
	api.Post("/Login", Controllers.Login)
	api.Use("/Logout", Controllers.Logout)
	api.Use("/User", Controllers.User)
	api.Post("/RegisterUser", middleware.Verify(4), Controllers.RegisterUser)
	api.Get("/FetchUsers", middleware.Verify(4), Controllers.FetchUsers)

	// Booking routes
	bookings := api.Group("/bookings", middleware.Verify(1))
	bookings.Get("/", bookingHandler.GetBookings)
	bookings.Post("/", middleware.Verify(2), bookingHandler.CreateBooking)
	bookings.Get("/:id", bookingHandler.GetBooking)
	bookings.Post("/:id/assign", middleware.Verify(2), bookingHandler.AssignVehicle)
	bookings.Post("/:id/cancel", middleware.Verify(2), bookingHandler.CancelBooking)
	bookings.Get("/:id/bills", billHandler.GetBillHistory)

	// Vehicle routes
	vehicles := api.Group("/vehicles", middleware.Verify(1))
	vehicles.Get("/", vehicleHandler.GetVehicles)
	vehicles.Post("/", middleware.Verify(2), vehicleHandler.RegisterVehicle)
	vehicles.Get("/:id", vehicleHandler.GetVehicle)
	vehicles.Put("/:id/odometer", middleware.Verify(2), vehicleHandler.UpdateVehicleOdometer)

	// Bill routes - place /export and /generate BEFORE the ID route to avoid conflicts
	bills := api.Group("/bills", middleware.Verify(1))
	bills.Get("/export", middleware.Verify(3), billHandler.ExportBills)
	bills.Post("/generate", middleware.Verify(2), billHandler.GenerateBill)
	bills.Get("/", billHandler.GetBills)
	bills.Get("/:id", billHandler.GetBill)
	bills.Get("/:id/company", middleware.Verify(3), transferHandler.GetCompanyBillForCustomerBill)
	bills.Post("/:id/mark-sent", middleware.Verify(2), billHandler.MarkBillSent)
	bills.Post("/:id/mark-paid", middleware.Verify(3), billHandler.MarkBillPaid)

	// Company ledger routes (accountant level)
	company := api.Group("/company-bills", middleware.Verify(3))
	company.Get("/:id", transferHandler.GetCompanyBill)

	transfers := api.Group("/transfers", middleware.Verify(3))
	transfers.Get("/pending", transferHandler.GetPendingTransfers)
	transfers.Post("/:id/complete", transferHandler.CompleteTransfer)

	// Settings
	settings := api.Group("/settings", middleware.Verify(1))
	settings.Get("/thresholds", settingsHandler.GetThresholds)
	settings.Put("/thresholds", middleware.Verify(3), settingsHandler.UpdateThreshold)

	// Audit trail (admin)
	api.Get("/logs", middleware.Verify(4), auditLogHandler.GetAuditLogs)
	api.Get("/logs/stats", middleware.Verify(4), auditLogHandler.GetAuditLogStats)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()

	app.Use(middleware.RequestLogger())
	app.Use(middleware.ErrorLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, Models.DB)

	app.Listen(":3001")
}
