package utils

import (
	"fmt"
	"time"
)

// FormatReservationDate renders an instant for email bodies,
// e.g. "Saturday 17 October 2026 at 19:00".
func FormatReservationDate(t time.Time) string {
	return fmt.Sprintf("%s at %s", t.Format("Monday 2 January 2006"), t.Format("15:04"))
}

// FormatGuests renders a guest count as "1 guest" / "4 guests".
func FormatGuests(n int) string {
	if n == 1 {
		return "1 guest"
	}
	return fmt.Sprintf("%d guests", n)
}
