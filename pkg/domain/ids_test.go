package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "conduct/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
// This is a compile-time check - if this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	userID := UserID(uuid.New())
	residentID := ResidentID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ UserID = residentID   // compile error
	// var _ ResidentID = userID   // compile error

	// Verify they're distinct at runtime too
	assert.NotEqual(t, uuid.UUID(userID), uuid.UUID(residentID))
}

// TestParseID_SecurityInvariants validates security-critical parsing rules.
//
// Parsing must reject attack vectors at API entry points.
func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Attack vectors
		{"SQL injection attempt", "'; DROP TABLE residents;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400​-e29b-41d4-a716-446655440000", true},

		// Edge cases
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},

		// Valid
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResidentID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types have identical parsing behavior.
func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	t.Run("all accept valid UUID", func(t *testing.T) {
		_, errUser := ParseUserID(validUUID)
		_, errResident := ParseResidentID(validUUID)
		_, errEvaluation := ParseEvaluationID(validUUID)
		_, errNotification := ParseNotificationID(validUUID)
		_, errNote := ParseNoteID(validUUID)
		_, errComment := ParseCommentID(validUUID)

		require.NoError(t, errUser)
		require.NoError(t, errResident)
		require.NoError(t, errEvaluation)
		require.NoError(t, errNotification)
		require.NoError(t, errNote)
		require.NoError(t, errComment)
	})

	for _, input := range invalidInputs {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errUser := ParseUserID(input)
			_, errResident := ParseResidentID(input)
			_, errEvaluation := ParseEvaluationID(input)
			_, errNotification := ParseNotificationID(input)
			_, errNote := ParseNoteID(input)
			_, errComment := ParseCommentID(input)

			require.Error(t, errUser)
			require.Error(t, errResident)
			require.Error(t, errEvaluation)
			require.Error(t, errNotification)
			require.Error(t, errNote)
			require.Error(t, errComment)
		})
	}
}
