package main

import (
	"log"
	"os"
	"runtime"

	"backend-hospital/internal/config"
	"backend-hospital/internal/http/handler"
	"backend-hospital/internal/http/middleware"
	"backend-hospital/internal/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	app := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
	})

	config.LoadEnv()
	config.InitRedis()
	config.InitDB()
	defer config.CloseDB()

	handler.InitEngine()
	go realtime.RunDisplayBroadcaster()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Hospital front-desk API running",
		})
	})

	// Public routes
	app.Post("/api/register", handler.Register)
	app.Post("/api/login", handler.Login)
	app.Get("/api/queue", handler.GetQueue)
	app.Get("/api/profiles", handler.GetAllProfiles)
	app.Get("/api/profiles/me", middleware.JWTAuth(), handler.GetMyProfile)
	app.Get("/api/profiles/:id", handler.GetProfileByID)
	app.Get("/api/records", handler.GetAllRecords)
	app.Get("/api/records/me", middleware.JWTAuth(), handler.GetMyRecords)
	app.Get("/api/records/by_patient/:patientId", handler.GetRecordsByPatient)
	app.Get("/api/records/:id", handler.GetRecordByID)
	app.Get("/api/config", handler.GetFrontDeskConfig)

	// Waiting-room display
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/queue", websocket.New(handler.QueueDisplaySocket))

	// Base API (everything below requires login)
	api := app.Group("/api", middleware.JWTAuth())

	// Auth
	api.Post("/logout", handler.Logout)

	// ===== PATIENT ROUTES =====
	api.Post("/queue/checkin", middleware.RoleAuth("patient"), handler.Checkin)
	api.Delete("/queue/checkin", middleware.RoleAuth("patient"), handler.CancelCheckin)
	api.Get("/queue/position", middleware.RoleAuth("patient"), handler.GetPosition)

	// ===== DOCTOR ROUTES =====
	api.Post("/queue/next", middleware.RoleAuth("doctor"), handler.CallNext)
	api.Get("/attendance/current", middleware.RoleAuth("doctor"), handler.GetCurrentAttendance)
	api.Post("/attendance/finish", middleware.RoleAuth("doctor"), handler.FinishAttendance)

	// ===== STAFF ROUTES =====
	api.Get("/dashboard/stats", middleware.RoleAuth("doctor", "admin"), handler.GetDashboardStatistics)
	api.Put("/config", middleware.RoleAuth("admin"), handler.UpdateFrontDeskConfig)

	addr := os.Getenv("APP_HOST") + ":" + config.GetEnv("APP_PORT", "8080")
	log.Println("Server running on", addr)
	log.Fatal(app.Listen(addr))
}
