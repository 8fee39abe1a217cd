package names

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	parts := strings.Split(Generate(), "_")

	require.Len(t, parts, 2, "expected adjective_surname")
	assert.NotEmpty(t, parts[0])
	assert.NotEmpty(t, parts[1])
}

func TestInvocationID(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 5, 0, time.UTC)

	id := InvocationID(now)

	assert.True(t, strings.HasPrefix(id, "20261017T093005-"), "got %s", id)

	parsed, err := ParseTime(id)
	require.NoError(t, err)
	assert.Equal(t, now, parsed)
}

func TestInvocationID_SortsChronologically(t *testing.T) {
	earlier := InvocationID(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	later := InvocationID(time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC))

	assert.Less(t, earlier[:15], later[:15])
}

func TestUniqueInvocationID(t *testing.T) {
	now := time.Now()
	taken := make(map[string]bool)

	for range 10 {
		id, err := UniqueInvocationID(now, func(id string) bool { return taken[id] }, 100)
		require.NoError(t, err)
		assert.False(t, taken[id], "duplicate id %s", id)
		taken[id] = true
	}
}

func TestUniqueInvocationID_AllTaken(t *testing.T) {
	always := func(string) bool { return true }

	_, err := UniqueInvocationID(time.Now(), always, 10)
	require.Error(t, err)

	_, err = UniqueInvocationID(time.Now(), always, 0)
	require.Error(t, err, "zero uses the default attempt count")
}

func TestParseTime_Invalid(t *testing.T) {
	for _, id := range []string{"", "nodash", "notatime-happy_turing"} {
		_, err := ParseTime(id)
		assert.Error(t, err, id)
	}
}
