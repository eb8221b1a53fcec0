package domain

import (
	"github.com/google/uuid"

	dErrors "sangamsetu/pkg/domain-errors"
)

// Typed UUIDs keep the three case entities and users from being mixed up at
// compile time. Parsing enforces the invariant that IDs are valid, non-nil
// UUIDs at trust boundaries (URL params, JSON bodies).
type (
	UserID          uuid.UUID
	MissingPersonID uuid.UUID
	FoundPersonID   uuid.UUID
	SuggestionID    uuid.UUID
)

func (id UserID) String() string          { return uuid.UUID(id).String() }
func (id MissingPersonID) String() string { return uuid.UUID(id).String() }
func (id FoundPersonID) String() string   { return uuid.UUID(id).String() }
func (id SuggestionID) String() string    { return uuid.UUID(id).String() }

// MarshalText/UnmarshalText keep the typed IDs rendering as canonical UUID
// strings in JSON instead of raw byte arrays.
func (id UserID) MarshalText() ([]byte, error)          { return []byte(id.String()), nil }
func (id MissingPersonID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id FoundPersonID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id SuggestionID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

func (id *MissingPersonID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = MissingPersonID(u)
	return nil
}

func (id *FoundPersonID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = FoundPersonID(u)
	return nil
}

func (id *SuggestionID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = SuggestionID(u)
	return nil
}

func (id UserID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id MissingPersonID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id FoundPersonID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id SuggestionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return parsed, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	return UserID(u), err
}

func ParseMissingPersonID(s string) (MissingPersonID, error) {
	u, err := parseUUID(s)
	return MissingPersonID(u), err
}

func ParseFoundPersonID(s string) (FoundPersonID, error) {
	u, err := parseUUID(s)
	return FoundPersonID(u), err
}

func ParseSuggestionID(s string) (SuggestionID, error) {
	u, err := parseUUID(s)
	return SuggestionID(u), err
}
