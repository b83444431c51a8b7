package handlers

import (
	"github.com/engiversee/platform/database"
	"github.com/engiversee/platform/models"
	"github.com/engiversee/platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListSessions(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Session{})

	if domain := c.Query("domain"); domain != "" {
		query = query.Where("domain = ?", domain)
	}
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}

	var sessions []models.Session
	if err := query.Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	return c.JSON(sessions)
}

type CreateSessionRequest struct {
	Title      string `json:"title" validate:"required"`
	Domain     string `json:"domain" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required"`
	Instructor string `json:"instructor" validate:"required"`
	Level      string `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Capacity   int    `json:"capacity" validate:"required,min=1"`
}

func CreateSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session := models.Session{
		Title:      req.Title,
		Domain:     req.Domain,
		Date:       req.Date,
		Time:       req.Time,
		Instructor: req.Instructor,
		Level:      req.Level,
		Capacity:   req.Capacity,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func BookSession(c *fiber.Ctx) error {
	userID := currentUserID(c)

	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	booking, err := bookingService().BookSession(userID, user.FullName, user.Email, sessionID)
	switch err {
	case nil:
	case services.ErrSessionFull:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This session is already full. Please choose another session."})
	case services.ErrSessionNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to book the session. Please try again."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking confirmed!",
		"booking": booking,
	})
}
