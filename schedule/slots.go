package schedule

import (
	"strings"
	"time"
)

// SessionTypes maps the short codes used by the booking form to display
// titles.
var SessionTypes = map[string]string{
	"WebDev":      "Web Development",
	"AppDev":      "App Development",
	"Datascience": "Data Science",
	"AIML":        "AI & Machine Learning",
}

// SessionTitle resolves a session-type code to its display title, falling
// back to the raw code for unknown types.
func SessionTitle(sessionType string) string {
	if title, ok := SessionTypes[sessionType]; ok {
		return title
	}
	return sessionType
}

func IsValidSessionType(sessionType string) bool {
	_, ok := SessionTypes[sessionType]
	return ok
}

type TimeSlot struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

// TimeSlots is the fixed daily appointment grid.
var TimeSlots = []TimeSlot{
	{ID: "1", Time: "9:00 AM - 10:00 AM"},
	{ID: "2", Time: "10:00 AM - 11:00 AM"},
	{ID: "3", Time: "11:00 AM - 12:00 PM"},
	{ID: "4", Time: "1:00 PM - 2:00 PM"},
	{ID: "5", Time: "2:00 PM - 3:00 PM"},
	{ID: "6", Time: "3:00 PM - 4:00 PM"},
	{ID: "7", Time: "4:00 PM - 5:00 PM"},
	{ID: "8", Time: "5:00 PM - 6:00 PM"},
}

// SlotBookingLimit caps how many bookings a single slot accepts per day.
const SlotBookingLimit = 200

// BookingBuffer keeps same-day slots bookable only up to this long before
// they start.
const BookingBuffer = 30 * time.Minute

const dateLayout = "2006-01-02"

func FindSlot(slotTime string) (TimeSlot, bool) {
	for _, slot := range TimeSlots {
		if slot.Time == slotTime {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// SlotStart parses the start of a slot window ("9:00 AM - 10:00 AM") on the
// given date.
func SlotStart(slot TimeSlot, date string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, err
	}

	startText := slot.Time
	if i := strings.Index(startText, " - "); i >= 0 {
		startText = startText[:i]
	}
	start, err := time.ParseInLocation("3:04 PM", startText, time.Local)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, time.Local), nil
}

// SlotAvailable reports whether a slot can still be booked for the given
// date. Slots are unavailable if they are in the past (including today's
// slots starting within the booking buffer) or if they have reached the
// booking limit.
func SlotAvailable(slot TimeSlot, date string, bookedCount int, now time.Time) bool {
	start, err := SlotStart(slot, date)
	if err != nil {
		return false
	}

	if !start.After(now.Add(BookingBuffer)) {
		return false
	}

	return bookedCount < SlotBookingLimit
}
