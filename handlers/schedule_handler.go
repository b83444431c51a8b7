package handlers

import (
	"time"

	"github.com/engiversee/platform/database"
	"github.com/engiversee/platform/models"
	"github.com/engiversee/platform/schedule"
	"github.com/gofiber/fiber/v2"
)

type slotStatus struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Remaining int    `json:"remaining"`
}

// GetSlots lists the daily appointment grid for a date, with per-slot
// availability derived from existing booking counts.
func GetSlots(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date query parameter is required"})
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be in YYYY-MM-DD format"})
	}

	type countRow struct {
		Time  string
		Count int
	}
	var rows []countRow
	if err := database.DB.Model(&models.Booking{}).
		Select("time, count(*) as count").
		Where("date = ?", date).
		Group("time").
		Scan(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch slot availability"})
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Time] = row.Count
	}

	now := time.Now()
	slots := make([]slotStatus, 0, len(schedule.TimeSlots))
	for _, slot := range schedule.TimeSlots {
		booked := counts[slot.Time]
		slots = append(slots, slotStatus{
			ID:        slot.ID,
			Time:      slot.Time,
			Available: schedule.SlotAvailable(slot, date, booked, now),
			Remaining: schedule.SlotBookingLimit - booked,
		})
	}

	return c.JSON(fiber.Map{"date": date, "slots": slots})
}

func GetSessionTypes(c *fiber.Ctx) error {
	return c.JSON(schedule.SessionTypes)
}
