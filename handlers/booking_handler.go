package handlers

import (
	"time"

	"github.com/engiversee/platform/database"
	"github.com/engiversee/platform/models"
	"github.com/engiversee/platform/notifications"
	"github.com/engiversee/platform/schedule"
	"github.com/engiversee/platform/services"
	"github.com/engiversee/platform/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func bookingService() *services.BookingService {
	return services.NewBookingService(services.NewGormSessionStore(database.DB))
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

type CreateAppointmentRequest struct {
	UserName    string `json:"user_name" validate:"required"`
	UserEmail   string `json:"user_email" validate:"required,email"`
	SessionType string `json:"session_type" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required"`
}

func CreateAppointment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !schedule.IsValidSessionType(req.SessionType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown session type"})
	}

	slot, ok := schedule.FindSlot(req.Time)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown time slot"})
	}

	var bookedCount int64
	database.DB.Model(&models.Booking{}).
		Where("date = ? AND time = ?", req.Date, req.Time).
		Count(&bookedCount)

	if !schedule.SlotAvailable(slot, req.Date, int(bookedCount), time.Now()) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This time slot is no longer available. Please choose another slot."})
	}

	reference := utils.GenerateBookingReference()
	booking := models.Booking{
		UserID:       userID,
		UserName:     req.UserName,
		UserEmail:    req.UserEmail,
		SessionType:  req.SessionType,
		SessionTitle: schedule.SessionTitle(req.SessionType),
		Date:         req.Date,
		Time:         req.Time,
		Status:       models.BookingStatusUpcoming,
		BookingType:  models.BookingTypeAppointment,
		Reference:    &reference,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to book appointment. Please try again."})
	}

	go notifications.SendBookingConfirmation(&booking)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var bookings []models.Booking
	if err := database.DB.Where("user_id = ?", userID).Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(bookings)
}

func CancelBooking(c *fiber.Ctx) error {
	userID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	switch err := bookingService().CancelBooking(userID, bookingID); err {
	case nil:
		return c.JSON(fiber.Map{"message": "Booking cancelled successfully."})
	case services.ErrBookingNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	case services.ErrNotYourBooking:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}
}
