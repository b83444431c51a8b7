package notifications

import (
	"fmt"

	"github.com/engiversee/platform/models"
)

// SendBookingConfirmation is dispatched whenever a booking record is created.
// It renders the confirmation template from the new record's fields and hands
// it to the mail transport.
func SendBookingConfirmation(booking *models.Booking) {
	html := fmt.Sprintf(`
		<h1>Appointment Confirmation</h1>
		<p>Dear %s,</p>
		<p>Your appointment has been successfully booked. Here are the details:</p>
		<ul>
			<li><strong>Booking ID:</strong> %s</li>
			<li><strong>Session Type:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Please keep this information for your records.</p>
		<p>Best regards,<br>The Engiversee Team</p>`,
		booking.UserName, booking.ID, booking.SessionTitle, booking.Date, booking.Time, booking.Status,
	)

	SendEmail(booking.UserName, booking.UserEmail, "Appointment Confirmation", html)
}
