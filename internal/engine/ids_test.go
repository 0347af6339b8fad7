// internal/engine/ids_test.go
package engine

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDRange(t *testing.T) {
	taken := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		id := newID(taken, sessionIDMax)
		n, err := strconv.Atoi(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, sessionIDMax/10)
		assert.LessOrEqual(t, n, sessionIDMax)
	}
}

func TestNewIDAvoidsTakenIDs(t *testing.T) {
	// With max=10 the candidate range is [1,10]; leave exactly one id free
	// and the retry loop has to land on it.
	taken := map[string]struct{}{}
	for i := 1; i <= 10; i++ {
		if i != 7 {
			taken[strconv.Itoa(i)] = struct{}{}
		}
	}

	for i := 0; i < 20; i++ {
		assert.Equal(t, "7", newID(taken, 10))
	}
}

func TestNewIDUnique(t *testing.T) {
	taken := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		id := newID(taken, defaultIDMax)
		_, dup := taken[id]
		require.False(t, dup)
		taken[id] = struct{}{}
	}
}
