package view

import (
	"fmt"
	"time"
)

// FormatChatTime renders t as the chat list shows it, e.g. "오후 4:05".
// Midnight and noon read as 12. The zero time renders as "".
func FormatChatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	period := "오전"
	if t.Hour() >= 12 {
		period = "오후"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%s %d:%02d", period, hour, t.Minute())
}
