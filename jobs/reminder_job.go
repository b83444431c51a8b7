package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/engiversee/platform/database"
	"github.com/engiversee/platform/models"
	"github.com/engiversee/platform/notifications"
	"github.com/engiversee/platform/schedule"
)

// SendBookingReminders emails everyone whose booking starts in roughly an
// hour. Runs every five minutes, so the window is five minutes wide to avoid
// double sends.
func SendBookingReminders() {
	log.Println("Running job: SendBookingReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.Booking
	err := database.DB.
		Where("status = ?", models.BookingStatusUpcoming).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error fetching upcoming bookings: %v", err)
		return
	}

	for _, booking := range upcoming {
		slot, ok := schedule.FindSlot(booking.Time)
		if !ok {
			continue
		}
		start, err := schedule.SlotStart(slot, booking.Date)
		if err != nil {
			continue
		}
		if start.Before(lowerBound) || !start.Before(upperBound) {
			continue
		}

		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		emailSubject := "Reminder: Your Session Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Hi %s,</p><p>This is a friendly reminder that your %s session is scheduled to start in one hour at %s.</p>",
			booking.UserName,
			booking.SessionTitle,
			start.Format(time.Kitchen),
		)

		go notifications.SendEmail(booking.UserName, booking.UserEmail, emailSubject, emailBody)
	}
}
