// Package names generates identifiers for tool invocations.
package names

import (
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/pkg/namesgenerator"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "20060102T150405"

// ExistsFn checks if an ID is already taken.
type ExistsFn func(id string) bool

// Generate returns a random adjective_surname name (e.g., "focused_turing").
func Generate() string {
	return namesgenerator.GetRandomName(0)
}

// InvocationID returns an ID of the form <timestamp>-<adjective_surname>.
func InvocationID(now time.Time) string {
	return now.UTC().Format(timeLayout) + "-" + Generate()
}

// UniqueInvocationID returns an InvocationID not taken according to existsFn.
// Returns an error if none is found after maxAttempts tries.
func UniqueInvocationID(now time.Time, existsFn ExistsFn, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = 100
	}

	for range maxAttempts {
		id := InvocationID(now)
		if !existsFn(id) {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique invocation id after %d attempts", maxAttempts)
}

// ParseTime extracts the timestamp from an invocation ID.
func ParseTime(id string) (time.Time, error) {
	stamp, _, ok := strings.Cut(id, "-")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid invocation id %q", id)
	}
	t, err := time.Parse(timeLayout, stamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid invocation id %q: %w", id, err)
	}
	return t, nil
}
