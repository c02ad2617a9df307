package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("meeting")))
	assert.Equal(t, KindInvalidState, KindOf(InvalidState("already archived")))
	assert.Equal(t, KindValidation, KindOf(Validationf("score %d out of range", 42)))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("plain error")))
}

func TestKindOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("draft"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindConflict))
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "INTERNAL")
}

func TestNotFound_Message(t *testing.T) {
	assert.Contains(t, NotFound("team").Error(), "team not found")
}
