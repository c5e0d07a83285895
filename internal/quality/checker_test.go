package quality

import (
	"strings"
	"testing"
)

const (
	bulletA = "Reviewed biology chapter four on cell respiration"
	bulletB = "Practiced twenty calculus integration problems today"
	bulletC = "Wrote a draft outline for the history essay"
)

func TestGoodSubmission(t *testing.T) {
	res := Check([]string{bulletA, bulletB, bulletC}, nil)
	if res.Status != StatusGood {
		t.Fatalf("status: want=GOOD got=%s (reasons=%v errors=%v)", res.Status, res.Reasons, res.ValidationErrors)
	}
	if len(res.Reasons) != 0 || len(res.ValidationErrors) != 0 {
		t.Fatalf("expected clean result, got reasons=%v errors=%v", res.Reasons, res.ValidationErrors)
	}
}

func TestRequiresTwoOfThreeBullets(t *testing.T) {
	res := Check([]string{bulletA, "", "  "}, nil)
	if len(res.ValidationErrors) == 0 {
		t.Fatalf("expected validation error for single bullet")
	}
	if res.Status != StatusLowEffort {
		t.Fatalf("status: want=LOW_EFFORT got=%s", res.Status)
	}
}

func TestRejectsMoreThanThreeBullets(t *testing.T) {
	res := Check([]string{bulletA, bulletB, bulletC, bulletA, bulletB}, nil)
	if len(res.ValidationErrors) == 0 {
		t.Fatalf("expected validation error for five bullets")
	}
	if res.Status != StatusLowEffort {
		t.Fatalf("status: want=LOW_EFFORT got=%s", res.Status)
	}
}

func TestBulletLengthBounds(t *testing.T) {
	short := "too short"
	long := strings.Repeat("x", 141)

	res := Check([]string{short, bulletB, bulletC}, nil)
	if len(res.ValidationErrors) != 1 {
		t.Fatalf("short bullet: want 1 error got %v", res.ValidationErrors)
	}

	res = Check([]string{long, bulletB, bulletC}, nil)
	if len(res.ValidationErrors) != 1 {
		t.Fatalf("long bullet: want 1 error got %v", res.ValidationErrors)
	}

	// Exactly at the bounds is fine.
	exact20 := strings.Repeat("a", 20)
	exact140 := strings.Repeat("b", 140)
	res = Check([]string{exact20, exact140, ""}, nil)
	if len(res.ValidationErrors) != 0 {
		t.Fatalf("boundary lengths: unexpected errors %v", res.ValidationErrors)
	}
}

func TestValidationShortCircuitsLowEffortChecks(t *testing.T) {
	// Duplicate bullets would normally add a reason, but the length violation
	// must suppress the advisory checks entirely.
	res := Check([]string{"short", "short", ""}, nil)
	if len(res.ValidationErrors) == 0 {
		t.Fatalf("expected validation errors")
	}
	if len(res.Reasons) != 0 {
		t.Fatalf("low-effort reasons must be skipped, got %v", res.Reasons)
	}
}

func TestFillerPhraseDetection(t *testing.T) {
	res := Check([]string{"Honestly just did the same as yesterday, nothing else", bulletB, bulletC}, nil)
	if res.Status != StatusLowEffort {
		t.Fatalf("status: want=LOW_EFFORT got=%s", res.Status)
	}
	if len(res.Reasons) == 0 || !strings.Contains(res.Reasons[0], "filler") {
		t.Fatalf("expected filler reason, got %v", res.Reasons)
	}
}

func TestDuplicateBulletsCaseInsensitive(t *testing.T) {
	res := Check([]string{bulletA, strings.ToUpper(bulletA), bulletC}, nil)
	if res.Status != StatusLowEffort {
		t.Fatalf("status: want=LOW_EFFORT got=%s", res.Status)
	}
	found := false
	for _, r := range res.Reasons {
		if strings.Contains(r, "duplicate") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicate reason, got %v", res.Reasons)
	}
}

func TestSimilarityToYesterday(t *testing.T) {
	today := []string{bulletA, bulletB, ""}

	res := Check(today, []string{bulletA, bulletB, ""})
	if res.Status != StatusLowEffort {
		t.Fatalf("identical to yesterday: want=LOW_EFFORT got=%s", res.Status)
	}

	res = Check(today, []string{"Completed physics lab report about pendulum motion", "Memorized thirty Spanish vocabulary flashcards", ""})
	if res.Status != StatusGood {
		t.Fatalf("distinct from yesterday: want=GOOD got=%s (reasons=%v)", res.Status, res.Reasons)
	}
}

func TestSimilarityScoreIdentical(t *testing.T) {
	if got := SimilarityScore(bulletA, bulletA); got != 1.0 {
		t.Fatalf("identical: want=1.0 got=%v", got)
	}
}

func TestSimilarityScoreDisjoint(t *testing.T) {
	a := "reviewed biology chapter cell respiration"
	b := "painted landscape watercolor sunset mountains"
	if got := SimilarityScore(a, b); got >= 0.3 {
		t.Fatalf("disjoint vocabularies: want < 0.3 got=%v", got)
	}
}

func TestSimilarityScoreIgnoresShortWordsAndPunctuation(t *testing.T) {
	a := "Reviewed, the biology chapter! On a"
	b := "reviewed the biology chapter"
	if got := SimilarityScore(a, b); got != 1.0 {
		t.Fatalf("want=1.0 got=%v", got)
	}
}
