package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "sangamsetu/pkg/domain-errors"
)

// Parsing enforces the invariant that IDs crossing trust boundaries are
// valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseSuggestionID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseMissingPersonID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseFoundPersonID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, FoundPersonID(valid), id)
	})
}

// All four parse functions share one validator; behavior must stay uniform.
func TestParseConsistency(t *testing.T) {
	inputs := []string{"", "invalid", uuid.Nil.String(), uuid.NewString()}
	for _, input := range inputs {
		_, errUser := ParseUserID(input)
		_, errMissing := ParseMissingPersonID(input)
		_, errFound := ParseFoundPersonID(input)
		_, errSuggestion := ParseSuggestionID(input)

		assert.Equal(t, errUser == nil, errMissing == nil, "input %q", input)
		assert.Equal(t, errUser == nil, errFound == nil, "input %q", input)
		assert.Equal(t, errUser == nil, errSuggestion == nil, "input %q", input)
	}
}

// Typed IDs must render as canonical UUID strings in JSON, not byte arrays.
func TestIDJSONRoundTrip(t *testing.T) {
	original := MissingPersonID(uuid.New())

	raw, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"`+original.String()+`"`, string(raw))

	var decoded MissingPersonID
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}

func TestIsNil(t *testing.T) {
	assert.True(t, UserID(uuid.Nil).IsNil())
	assert.False(t, UserID(uuid.New()).IsNil())
}
