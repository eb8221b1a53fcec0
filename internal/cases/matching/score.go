// Package matching computes the similarity score between a missing-person
// report and a found-person report. Pure functions only; no I/O.
package matching

import (
	"math"
	"strings"

	"sangamsetu/internal/cases/models"
)

// Threshold is the minimum confidence for materializing a match suggestion.
// Inclusive: a score of exactly 0.6 produces a suggestion.
const Threshold = 0.6

// Score compares the two reports attribute by attribute and returns the
// fraction of comparable attributes that matched, in [0, 1].
//
// An attribute pair is comparable only when both sides carry a value:
//   - age: matches when the difference is at most 2 years
//   - gender: matches on exact (case-sensitive) equality of the stored codes
//   - location: matches when the missing report's last-seen location appears
//     as a case-insensitive substring of the found report's location. The
//     direction is deliberate and not symmetric: a person last seen at
//     "plaza" can turn up at "downtown plaza", not the other way around.
//
// With no comparable attributes the score is 0. All attributes weigh the
// same. The result is rounded to two decimals with round-half-to-even.
func Score(missing *models.MissingPerson, found *models.FoundPerson) float64 {
	matched := 0
	compared := 0

	if missing.ApproxAge != nil && found.ApproxAge != nil {
		compared++
		diff := *missing.ApproxAge - *found.ApproxAge
		if diff < 0 {
			diff = -diff
		}
		if diff <= 2 {
			matched++
		}
	}

	if missing.Gender != "" && found.Gender != "" {
		compared++
		if missing.Gender == found.Gender {
			matched++
		}
	}

	if missing.LastSeenLocation != "" && found.FoundLocation != "" {
		compared++
		if strings.Contains(strings.ToLower(found.FoundLocation), strings.ToLower(missing.LastSeenLocation)) {
			matched++
		}
	}

	if compared == 0 {
		return 0
	}
	return round2(float64(matched) / float64(compared))
}

// round2 rounds to two decimal places using round-half-to-even (banker's
// rounding), so 0.125 rounds to 0.12 and 0.135 to 0.14.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
