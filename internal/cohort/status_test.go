package cohort

import (
	"testing"
	"time"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestPaidCountAtThresholdActivates(t *testing.T) {
	for _, current := range []Status{StatusTrial, StatusLocked} {
		info := ComputeStatus(StatusInput{
			Current:     current,
			TrialEndsAt: now.Add(-48 * time.Hour), // even with trial long expired
			PaidCount:   ActivationThreshold,
			MemberCount: 10,
			Now:         now,
		})
		if info.Status != StatusActive {
			t.Fatalf("current=%s: want=ACTIVE got=%s", current, info.Status)
		}
		if !info.JustActivated {
			t.Fatalf("current=%s: expected fresh activation", current)
		}
		if !info.CanSubmit {
			t.Fatalf("current=%s: active cohort must accept submissions", current)
		}
	}
}

func TestActivationIsPermanent(t *testing.T) {
	activated := now.Add(-30 * 24 * time.Hour)

	// Paid count dropped to zero, trial long gone: still ACTIVE.
	info := ComputeStatus(StatusInput{
		Current:     StatusTrial,
		TrialEndsAt: now.Add(-40 * 24 * time.Hour),
		ActivatedAt: &activated,
		PaidCount:   0,
		MemberCount: 8,
		Now:         now,
	})
	if info.Status != StatusActive {
		t.Fatalf("want=ACTIVE got=%s", info.Status)
	}
	if info.JustActivated {
		t.Fatalf("prior activation must not count as fresh")
	}

	// Same when only the persisted status says ACTIVE.
	info = ComputeStatus(StatusInput{
		Current:     StatusActive,
		TrialEndsAt: now.Add(-40 * 24 * time.Hour),
		PaidCount:   0,
		Now:         now,
	})
	if info.Status != StatusActive {
		t.Fatalf("want=ACTIVE got=%s", info.Status)
	}
}

func TestExpiredTrialLocks(t *testing.T) {
	info := ComputeStatus(StatusInput{
		Current:     StatusTrial,
		TrialEndsAt: now.Add(-time.Second),
		PaidCount:   ActivationThreshold - 1,
		MemberCount: 8,
		Now:         now,
	})
	if info.Status != StatusLocked {
		t.Fatalf("want=LOCKED got=%s", info.Status)
	}
	if info.CanSubmit {
		t.Fatalf("locked cohort must not accept submissions")
	}
	if !info.IsTrialExpired {
		t.Fatalf("expected IsTrialExpired")
	}
}

func TestActiveTrialStaysTrial(t *testing.T) {
	info := ComputeStatus(StatusInput{
		Current:     StatusTrial,
		TrialEndsAt: now.Add(36 * time.Hour),
		PaidCount:   2,
		MemberCount: 5,
		Now:         now,
	})
	if info.Status != StatusTrial {
		t.Fatalf("want=TRIAL got=%s", info.Status)
	}
	if !info.CanSubmit {
		t.Fatalf("trial cohort must accept submissions")
	}
	// 36h remaining rounds up to 2 days.
	if info.DaysUntilTrialEnd != 2 {
		t.Fatalf("DaysUntilTrialEnd: want=2 got=%d", info.DaysUntilTrialEnd)
	}
}

func TestDaysUntilTrialEndFloorsAtZero(t *testing.T) {
	info := ComputeStatus(StatusInput{
		Current:     StatusTrial,
		TrialEndsAt: now.Add(-72 * time.Hour),
		Now:         now,
	})
	if info.DaysUntilTrialEnd != 0 {
		t.Fatalf("DaysUntilTrialEnd: want=0 got=%d", info.DaysUntilTrialEnd)
	}
}

func TestShowActivationCounter(t *testing.T) {
	for paid, want := range map[int]bool{0: false, 3: false, 4: true, 5: true, 6: true} {
		info := ComputeStatus(StatusInput{
			Current:     StatusTrial,
			TrialEndsAt: now.Add(24 * time.Hour),
			PaidCount:   paid,
			Now:         now,
		})
		if info.ShowActivationCounter != want {
			t.Fatalf("paid=%d: ShowActivationCounter want=%v got=%v", paid, want, info.ShowActivationCounter)
		}
	}
}

func TestActivationCounterText(t *testing.T) {
	for _, p := range []int{0, 1, 3} {
		if got := ActivationCounterText(p); got != "" {
			t.Fatalf("paid=%d: want empty got=%q", p, got)
		}
	}
	cases := map[int]string{
		4: "Activation: 4/6",
		5: "Activation: 5/6",
		6: "Activation: 6/6",
	}
	for p, want := range cases {
		if got := ActivationCounterText(p); got != want {
			t.Fatalf("paid=%d: want=%q got=%q", p, want, got)
		}
	}
}

func TestTrialEndDate(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	want := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	if got := TrialEndDate(created); !got.Equal(want) {
		t.Fatalf("TrialEndDate: want=%v got=%v", want, got)
	}
}
