// Package cohort holds the pure cohort lifecycle state machine. It decides the
// effective status of a cohort from persisted facts; persistence of the result
// is the caller's job.
package cohort

import (
	"fmt"
	"math"
	"time"
)

type Status string

const (
	StatusTrial  Status = "TRIAL"
	StatusActive Status = "ACTIVE"
	StatusLocked Status = "LOCKED"
)

const (
	// ActivationThreshold is the paid-member count that permanently activates
	// a cohort.
	ActivationThreshold = 6

	// CounterVisibilityThreshold is the paid-member count at which the
	// activation progress counter becomes visible.
	CounterVisibilityThreshold = 4

	// TrialDays is the fixed trial length for a new cohort.
	TrialDays = 14
)

// StatusInput carries the persisted facts the state machine derives from.
type StatusInput struct {
	Current     Status
	TrialEndsAt time.Time
	ActivatedAt *time.Time
	PaidCount   int
	MemberCount int
	Now         time.Time
}

// StatusInfo is the derived, display-ready cohort state.
type StatusInfo struct {
	Status                Status
	CanSubmit             bool
	IsTrialExpired        bool
	DaysUntilTrialEnd     int
	ShowActivationCounter bool

	// JustActivated marks a fresh TRIAL/LOCKED -> ACTIVE transition. The
	// caller sets activatedAt = Now on persist, and only if not already set.
	JustActivated bool
}

// ComputeStatus derives the effective cohort status. Priority order, first
// match wins:
//  1. already ACTIVE or activatedAt set: ACTIVE forever, even if the paid
//     count later drops below the threshold
//  2. paid count at threshold: ACTIVE (fresh activation)
//  3. trial expired: LOCKED
//  4. otherwise: TRIAL
func ComputeStatus(in StatusInput) StatusInfo {
	info := StatusInfo{
		IsTrialExpired:        in.Now.After(in.TrialEndsAt),
		DaysUntilTrialEnd:     daysUntil(in.TrialEndsAt, in.Now),
		ShowActivationCounter: in.PaidCount >= CounterVisibilityThreshold,
	}

	switch {
	case in.Current == StatusActive || in.ActivatedAt != nil:
		info.Status = StatusActive
	case in.PaidCount >= ActivationThreshold:
		info.Status = StatusActive
		info.JustActivated = true
	case info.IsTrialExpired:
		info.Status = StatusLocked
	default:
		info.Status = StatusTrial
	}

	info.CanSubmit = info.Status != StatusLocked
	return info
}

// TrialEndDate returns the trial expiry for a cohort created at createdAt.
func TrialEndDate(createdAt time.Time) time.Time {
	return createdAt.AddDate(0, 0, TrialDays)
}

// ActivationCounterText returns the progress string shown once the counter is
// visible, or "" below the visibility threshold.
func ActivationCounterText(paidCount int) string {
	if paidCount < CounterVisibilityThreshold {
		return ""
	}
	return fmt.Sprintf("Activation: %d/%d", paidCount, ActivationThreshold)
}

// daysUntil is the ceiling of the remaining time in days, floored at 0.
func daysUntil(deadline, now time.Time) int {
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}
