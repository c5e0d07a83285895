// Package quality validates daily submission bullets and flags low-effort
// content. It is independent of time and storage; callers feed it today's
// bullets plus, optionally, the prior day's for similarity comparison.
package quality

import (
	"fmt"
	"strings"
	"unicode"
)

type Status string

const (
	StatusGood      Status = "GOOD"
	StatusLowEffort Status = "LOW_EFFORT"
)

const (
	// MinBulletLen and MaxBulletLen bound each non-empty bullet, in characters.
	MinBulletLen = 20
	MaxBulletLen = 140

	// MinBullets of the MaxBullets slots must be non-empty.
	MinBullets = 2
	MaxBullets = 3

	// SimilarityThreshold flags a submission that merely restates yesterday's.
	SimilarityThreshold = 0.70
)

// fillerPhrases are bullets that carry no content on their own. Matching is
// against the whole normalized bullet, not a substring scan.
var fillerPhrases = []string{
	"idk",
	"n/a",
	"na",
	"nothing",
	"nothing much",
	"not much",
	"same as yesterday",
	"same as before",
	"ditto",
	"no idea",
	"nothing new",
}

// Result is the combined verdict for one submission.
//
// ValidationErrors are blocking: callers must refuse the write when any are
// present. Reasons are advisory; the submission is stored with LOW_EFFORT
// status but accepted.
type Result struct {
	Status           Status
	Reasons          []string
	ValidationErrors []string
}

// Check runs validation then, only if validation passes, the low-effort
// heuristics. prevBullets is yesterday's submission, or nil when there is none.
func Check(bullets []string, prevBullets []string) Result {
	res := Result{Status: StatusGood}

	if len(bullets) > MaxBullets {
		res.ValidationErrors = append(res.ValidationErrors,
			fmt.Sprintf("at most %d bullets are allowed", MaxBullets))
	}

	nonEmpty := 0
	for i, b := range bullets {
		trimmed := strings.TrimSpace(b)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if n := len([]rune(trimmed)); n < MinBulletLen || n > MaxBulletLen {
			res.ValidationErrors = append(res.ValidationErrors,
				fmt.Sprintf("bullet %d must be between %d and %d characters", i+1, MinBulletLen, MaxBulletLen))
		}
	}
	if nonEmpty < MinBullets {
		res.ValidationErrors = append(res.ValidationErrors,
			fmt.Sprintf("at least %d of %d bullets are required", MinBullets, MaxBullets))
	}

	// Validation failures short-circuit: low-effort heuristics are skipped.
	if len(res.ValidationErrors) > 0 {
		res.Status = StatusLowEffort
		return res
	}

	if reason := fillerReason(bullets); reason != "" {
		res.Reasons = append(res.Reasons, reason)
	}
	if reason := duplicateReason(bullets); reason != "" {
		res.Reasons = append(res.Reasons, reason)
	}
	if len(prevBullets) > 0 {
		score := SimilarityScore(strings.Join(bullets, " "), strings.Join(prevBullets, " "))
		if score >= SimilarityThreshold {
			res.Reasons = append(res.Reasons,
				fmt.Sprintf("too similar to yesterday's entry (%.0f%% overlap)", score*100))
		}
	}

	if len(res.Reasons) > 0 {
		res.Status = StatusLowEffort
	}
	return res
}

// SimilarityScore is the Jaccard similarity of the token sets of a and b:
// lowercased, punctuation stripped, words longer than 2 characters.
// Identical inputs score 1.0.
func SimilarityScore(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if len([]rune(tok)) > 2 {
			set[tok] = true
		}
	}
	return set
}

func fillerReason(bullets []string) string {
	for i, b := range bullets {
		norm := normalizeBullet(b)
		if norm == "" {
			continue
		}
		words := " " + strings.Join(strings.Fields(stripPunct(norm)), " ") + " "
		for _, phrase := range fillerPhrases {
			// Single-word phrases only match the whole bullet; multiword
			// phrases also match word-bounded inside it.
			if norm == phrase {
				return fmt.Sprintf("bullet %d is a filler phrase (%q)", i+1, phrase)
			}
			if strings.Contains(phrase, " ") && strings.Contains(words, " "+phrase+" ") {
				return fmt.Sprintf("bullet %d is a filler phrase (%q)", i+1, phrase)
			}
		}
	}
	return ""
}

func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return ' '
		}
		return r
	}, s)
}

func duplicateReason(bullets []string) string {
	seen := make(map[string]int)
	for i, b := range bullets {
		norm := normalizeBullet(b)
		if norm == "" {
			continue
		}
		if first, ok := seen[norm]; ok {
			return fmt.Sprintf("bullets %d and %d are duplicates", first+1, i+1)
		}
		seen[norm] = i
	}
	return ""
}

// normalizeBullet lowercases, trims, and drops trailing punctuation so that
// "IDK." still matches the filler list and "Same thing!" equals "same thing".
func normalizeBullet(b string) string {
	norm := strings.ToLower(strings.TrimSpace(b))
	return strings.TrimRightFunc(norm, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}
