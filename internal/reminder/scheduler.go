// Package reminder decides whether a deadline reminder should fire for a
// member right now. The decision is pure; delivery and the idempotency claim
// on the reminder log belong to the caller.
package reminder

import (
	"math"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/clock"
)

type Type string

const (
	TypeRemind   Type = "REMIND"
	TypeLastCall Type = "LAST_CALL"
)

const (
	// WindowTolerance is the band around each target offset within which the
	// reminder fires, in minutes. The loop that drives decisions runs every
	// few minutes, so the band absorbs scheduling jitter.
	WindowTolerance = 5

	// DefaultRemindMinutes and DefaultLastCallMinutes apply when a user has
	// no stored preferences.
	DefaultRemindMinutes   = 90
	DefaultLastCallMinutes = 15
)

// Prefs are a user's notification preferences. Quiet hours are local civil
// hours (0-23); nil means no quiet window.
type Prefs struct {
	Enabled         bool
	RemindMinutes   int
	LastCallMinutes int
	QuietHoursStart *int
	QuietHoursEnd   *int
}

// DefaultPrefs returns the preferences assumed for users who never saved any.
func DefaultPrefs() Prefs {
	return Prefs{
		Enabled:         true,
		RemindMinutes:   DefaultRemindMinutes,
		LastCallMinutes: DefaultLastCallMinutes,
	}
}

// Input is everything one decision needs, gathered by the caller.
type Input struct {
	HasSubmittedToday bool
	Prefs             Prefs
	AlreadySent       map[Type]bool
	Now               time.Time
}

// Decide returns the reminder type that should fire right now, or "" when
// nothing should. Checks run in priority order: an existing submission wins
// over everything, then disabled prefs, quiet hours, a passed deadline, and
// finally the two candidate windows with LAST_CALL taking precedence.
func Decide(in Input) Type {
	if in.HasSubmittedToday {
		return ""
	}
	if !in.Prefs.Enabled {
		return ""
	}
	if in.Prefs.QuietHoursStart != nil && in.Prefs.QuietHoursEnd != nil {
		hour := in.Now.In(clock.IST).Hour()
		if inQuietHours(hour, *in.Prefs.QuietHoursStart, *in.Prefs.QuietHoursEnd) {
			return ""
		}
	}

	today := clock.DateKey(in.Now)
	minutesLeft := clock.Cutoff(today).Sub(in.Now).Minutes()
	if minutesLeft <= 0 {
		return ""
	}

	// LAST_CALL is checked first: when both windows overlap, it wins, and a
	// window whose type was already sent today does not fall through to the
	// other.
	if inWindow(minutesLeft, in.Prefs.LastCallMinutes) {
		if in.AlreadySent[TypeLastCall] {
			return ""
		}
		return TypeLastCall
	}
	if inWindow(minutesLeft, in.Prefs.RemindMinutes) {
		if in.AlreadySent[TypeRemind] {
			return ""
		}
		return TypeRemind
	}
	return ""
}

func inWindow(minutesLeft float64, target int) bool {
	return math.Abs(minutesLeft-float64(target)) <= WindowTolerance
}

// inQuietHours reports whether hour falls in [start, end), wrapping past
// midnight when start > end (22 -> 7 spans the night).
func inQuietHours(hour, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}
