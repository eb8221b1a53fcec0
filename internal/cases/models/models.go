// Package models holds the case entities: missing-person reports,
// found-person reports, and the match suggestions linking the two.
package models

import (
	"time"

	"sangamsetu/pkg/domain"
)

// MissingPerson is a report that someone is missing. Records are never hard
// deleted; resolving a case flips Resolved so the matcher stops considering
// it. ReportedBy survives reporter account removal, hence the pointer.
type MissingPerson struct {
	ID               domain.MissingPersonID `json:"id"`
	Name             string                 `json:"name"`
	ApproxAge        *int                   `json:"approx_age"`
	Gender           string                 `json:"gender"`
	LastSeenLocation string                 `json:"last_seen_location"`
	LastSeenDate     *time.Time             `json:"last_seen_date"`
	Description      string                 `json:"description"`
	ReportedBy       *domain.UserID         `json:"reported_by"`
	CreatedAt        time.Time              `json:"created_at"`
	Resolved         bool                   `json:"resolved"`
}

// FoundPerson is a report of an unidentified person who has been found.
// Immutable after creation.
type FoundPerson struct {
	ID              domain.FoundPersonID `json:"id"`
	Name            string               `json:"name"`
	ApproxAge       *int                 `json:"approx_age"`
	Gender          string               `json:"gender"`
	FoundLocation   string               `json:"found_location"`
	CurrentLocation *string              `json:"current_location"`
	FinderContact   *string              `json:"finder_contact"`
	Description     string               `json:"description"`
	CreatedBy       domain.UserID        `json:"created_by"`
	CreatedAt       time.Time            `json:"created_at"`
}

// MatchSuggestion links one missing report to one found report with the
// confidence computed at creation time. Confidence is never recomputed;
// Confirmed moves false→true exactly once.
type MatchSuggestion struct {
	ID         domain.SuggestionID    `json:"id"`
	MissingID  domain.MissingPersonID `json:"missing_person"`
	FoundID    domain.FoundPersonID   `json:"found_person"`
	Confidence float64                `json:"confidence"`
	Confirmed  bool                   `json:"is_confirmed"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ReportMissingRequest is the missing-person submission payload.
type ReportMissingRequest struct {
	Name             string     `json:"name"`
	ApproxAge        *int       `json:"approx_age"`
	Gender           string     `json:"gender"`
	LastSeenLocation string     `json:"last_seen_location"`
	LastSeenDate     *time.Time `json:"last_seen_date"`
	Description      string     `json:"description"`
}

// ReportFoundRequest is the found-person submission payload.
type ReportFoundRequest struct {
	Name            string  `json:"name"`
	ApproxAge       *int    `json:"approx_age"`
	Gender          string  `json:"gender"`
	FoundLocation   string  `json:"found_location"`
	CurrentLocation *string `json:"current_location"`
	FinderContact   *string `json:"finder_contact"`
	Description     string  `json:"description"`
}

// SuggestionFilter narrows suggestion listings. Nil fields mean "no filter";
// set fields compose with AND.
type SuggestionFilter struct {
	MinConfidence *float64
	Confirmed     *bool
}

// Stats are the dashboard counters.
type Stats struct {
	MissingCount int `json:"missing_count"`
	FoundCount   int `json:"found_count"`
	MatchCount   int `json:"match_count"`
}
