package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCompletionCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		code, err := generateCompletionCode()
		require.NoError(t, err)
		require.Len(t, code, 6, "codes keep leading zeros")
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "code %q must be decimal digits", code)
		}
		seen[code] = true
	}

	// 1000 draws from a space of a million collide occasionally but must
	// not collapse onto a handful of values.
	assert.Greater(t, len(seen), 900)
}

func TestCompletionLockout(t *testing.T) {
	s := NewCompletionService(nil, nil, nil, nil, CompletionConfig{
		MaxAttempts:   3,
		LockoutWindow: 0, // falls back to the default window
	}).(*CompletionServiceImpl)

	const workID = "work-1"

	assert.False(t, s.isLocked(workID))

	s.recordFailure(workID)
	s.recordFailure(workID)
	assert.False(t, s.isLocked(workID), "below the attempt cap")

	s.recordFailure(workID)
	assert.True(t, s.isLocked(workID), "cap reached")

	// Another work is tracked independently
	assert.False(t, s.isLocked("work-2"))

	// A successful verification resets the counter
	s.attempts.Delete(workID)
	assert.False(t, s.isLocked(workID))
}
