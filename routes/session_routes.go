package routes

import (
	"github.com/engiversee/platform/handlers"
	"github.com/engiversee/platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions")
	sessions.Get("", handlers.ListSessions)
	sessions.Post("", middleware.Protected(), middleware.AdminRequired(), handlers.CreateSession)
	sessions.Post("/:sessionId/book", middleware.Protected(), middleware.VerifiedRequired(), handlers.BookSession)

	sched := api.Group("/schedule")
	sched.Get("/slots", handlers.GetSlots)
	sched.Get("/session-types", handlers.GetSessionTypes)
}
