package routes

import (
	"github.com/engiversee/platform/handlers"
	"github.com/engiversee/platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/verify-email", handlers.VerifyEmail)
	auth.Post("/forgot-password", handlers.ForgotPassword)
	auth.Post("/reset-password", handlers.ResetPassword)

	auth.Get("/verification-status", middleware.Protected(), handlers.VerificationStatus)
	auth.Post("/resend-verification", middleware.Protected(), handlers.ResendVerification)
}
