package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sangamsetu/internal/cases/models"
)

func intPtr(v int) *int { return &v }

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		missing models.MissingPerson
		found   models.FoundPerson
		want    float64
	}{
		{
			name:    "no comparable attributes scores zero",
			missing: models.MissingPerson{},
			found:   models.FoundPerson{},
			want:    0,
		},
		{
			name: "all three attributes match",
			missing: models.MissingPerson{
				ApproxAge:        intPtr(30),
				Gender:           "female",
				LastSeenLocation: "Downtown Plaza",
			},
			found: models.FoundPerson{
				ApproxAge:     intPtr(31),
				Gender:        "female",
				FoundLocation: "near downtown plaza station",
			},
			want: 1.0,
		},
		{
			name: "age within two years counts as a match",
			missing: models.MissingPerson{
				ApproxAge: intPtr(40),
			},
			found: models.FoundPerson{
				ApproxAge: intPtr(42),
			},
			want: 1.0,
		},
		{
			name: "age three years apart does not match",
			missing: models.MissingPerson{
				ApproxAge: intPtr(40),
			},
			found: models.FoundPerson{
				ApproxAge: intPtr(43),
			},
			want: 0,
		},
		{
			name: "gender comparison is exact",
			missing: models.MissingPerson{
				Gender: "Female",
			},
			found: models.FoundPerson{
				Gender: "female",
			},
			want: 0,
		},
		{
			name: "location containment is case insensitive",
			missing: models.MissingPerson{
				LastSeenLocation: "RIVERSIDE PARK",
			},
			found: models.FoundPerson{
				FoundLocation: "riverside park, north entrance",
			},
			want: 1.0,
		},
		{
			name: "two of three attributes match",
			missing: models.MissingPerson{
				ApproxAge:        intPtr(25),
				Gender:           "male",
				LastSeenLocation: "harbor bridge",
			},
			found: models.FoundPerson{
				ApproxAge:     intPtr(26),
				Gender:        "male",
				FoundLocation: "city center",
			},
			want: 0.67,
		},
		{
			name: "one of three attributes match",
			missing: models.MissingPerson{
				ApproxAge:        intPtr(25),
				Gender:           "male",
				LastSeenLocation: "harbor bridge",
			},
			found: models.FoundPerson{
				ApproxAge:     intPtr(60),
				Gender:        "male",
				FoundLocation: "city center",
			},
			want: 0.33,
		},
		{
			name: "only one attribute comparable and it matches",
			missing: models.MissingPerson{
				Gender: "male",
			},
			found: models.FoundPerson{
				ApproxAge:     intPtr(60),
				Gender:        "male",
				FoundLocation: "city center",
			},
			want: 1.0,
		},
		{
			name: "one of two comparable attributes match",
			missing: models.MissingPerson{
				ApproxAge: intPtr(20),
				Gender:    "female",
			},
			found: models.FoundPerson{
				ApproxAge: intPtr(50),
				Gender:    "female",
			},
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(&tt.missing, &tt.found)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

// Containment runs one way: the last-seen location must appear inside the
// found location. Swapping the strings must not match.
func TestScore_LocationDirection(t *testing.T) {
	missing := models.MissingPerson{LastSeenLocation: "central market square"}
	found := models.FoundPerson{FoundLocation: "market"}

	assert.Equal(t, 0.0, Score(&missing, &found))

	missing.LastSeenLocation = "market"
	found.FoundLocation = "central market square"
	assert.Equal(t, 1.0, Score(&missing, &found))
}

func TestScore_RoundsHalfToEven(t *testing.T) {
	// 2 of 3 matched: 0.666... rounds to 0.67.
	missing := models.MissingPerson{
		ApproxAge:        intPtr(30),
		Gender:           "male",
		LastSeenLocation: "elsewhere",
	}
	found := models.FoundPerson{
		ApproxAge:     intPtr(30),
		Gender:        "male",
		FoundLocation: "old town",
	}
	assert.Equal(t, 0.67, Score(&missing, &found))
}

// Midpoints between two-decimal values must round to the even neighbor,
// mirroring Python's round(). Score never produces 0.125 or 0.135 with three
// attributes, so round2 is exercised directly.
func TestRound2_Midpoints(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "midpoint above even digit rounds down", in: 0.125, want: 0.12},
		{name: "midpoint above odd digit rounds up", in: 0.135, want: 0.14},
		{name: "non-midpoint value is unchanged", in: 0.6, want: 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, round2(tt.in))
		})
	}
}

func TestThreshold(t *testing.T) {
	assert.GreaterOrEqual(t, 0.67, Threshold, "two of three matches must clear the threshold")
	assert.Less(t, 0.5, Threshold, "one of two matches must not clear the threshold")
}
