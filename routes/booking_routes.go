package routes

import (
	"github.com/engiversee/platform/handlers"
	"github.com/engiversee/platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected(), middleware.VerifiedRequired())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateAppointment)
	booking.Delete("/:bookingId", handlers.CancelBooking)
}
