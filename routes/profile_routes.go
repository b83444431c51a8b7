package routes

import (
	"github.com/engiversee/platform/handlers"
	"github.com/engiversee/platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)

	api.Get("/uploads/signature", middleware.Protected(), handlers.GenerateUploadSignature)
}
