package jobs

import (
	"log"
	"time"

	"github.com/engiversee/platform/database"
	"github.com/engiversee/platform/models"
	"github.com/engiversee/platform/schedule"
)

// MarkCompletedBookings moves Upcoming bookings whose slot has passed to
// Completed.
func MarkCompletedBookings() {
	log.Println("Running job: MarkCompletedBookings...")

	var upcoming []models.Booking
	err := database.DB.
		Where("status = ?", models.BookingStatusUpcoming).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error fetching upcoming bookings: %v", err)
		return
	}

	now := time.Now()
	completed := 0
	for _, booking := range upcoming {
		slot, ok := schedule.FindSlot(booking.Time)
		if !ok {
			continue
		}
		start, err := schedule.SlotStart(slot, booking.Date)
		if err != nil {
			continue
		}
		// The slot window is an hour; completion is judged from its end.
		if start.Add(time.Hour).After(now) {
			continue
		}

		booking.Status = models.BookingStatusCompleted
		if err := database.DB.Save(&booking).Error; err != nil {
			log.Printf("Failed to mark booking %s completed: %v", booking.ID, err)
			continue
		}
		completed++
	}

	if completed > 0 {
		log.Printf("Marked %d booking(s) as completed.", completed)
	}
}
