package view

import (
	"fmt"
	"time"
)

// DefaultMatchWindow is how long users may pick a match once the manager
// starts matching.
const DefaultMatchWindow = 10 * time.Minute

// Countdown is the time left in the love-matching window.
type Countdown struct {
	Remaining time.Duration `json:"-"`
	Seconds   int           `json:"seconds"`
	Label     string        `json:"label"`
	Expired   bool          `json:"expired"`
}

// NewCountdown computes the window state at now. A zero startedAt means
// matching has not started and the full window is shown.
func NewCountdown(startedAt time.Time, window time.Duration, now time.Time) Countdown {
	if window <= 0 {
		window = DefaultMatchWindow
	}
	remaining := window
	if !startedAt.IsZero() {
		remaining = startedAt.Add(window).Sub(now)
	}
	if remaining < 0 {
		remaining = 0
	}
	// Round up so the label only reaches 00:00 when the window is over.
	secs := int((remaining + time.Second - 1) / time.Second)
	return Countdown{
		Remaining: remaining,
		Seconds:   secs,
		Label:     fmt.Sprintf("%02d:%02d", secs/60, secs%60),
		Expired:   remaining == 0,
	}
}
