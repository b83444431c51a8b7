package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	config "github.com/engiversee/platform/configs"
	"github.com/engiversee/platform/meet"
)

func main() {
	hub := meet.NewHub()

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("🔥 Unhandled error: %v", err)
			return c.Status(code).JSON(fiber.Map{"status": "error", "message": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "rooms": hub.RoomCount()})
	})

	// A fresh room is just a fresh identifier; it only starts existing on
	// the hub once its host connects.
	app.Get("/rooms/new", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"room_id": uuid.NewString()})
	})

	app.Get("/rooms/:roomId/participants", func(c *fiber.Ctx) error {
		peers := hub.Roster(c.Params("roomId"))
		if peers == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Room not found or empty",
			})
		}
		return c.JSON(fiber.Map{"status": "success", "data": peers})
	})

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		meet.ServeWs(hub, conn)
	}))

	go serveMetrics()

	port := config.Config("MEET_PORT")
	if port == "" {
		port = "8090"
	}
	log.Printf("✅ Meet signalling server listening on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed: %v", err)
	}
}

func serveMetrics() {
	addr := config.Config("METRICS_ADDR")
	if addr == "" {
		addr = ":9091"
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("⚠️ Metrics listener stopped: %v", err)
	}
}
