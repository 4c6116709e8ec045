// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLicensingStatus(t *testing.T) {
	for _, status := range AllStatuses {
		parsed, ok := ParseLicensingStatus(string(status))
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	for _, raw := range []string{"", "archived", "PENDING", "in-review"} {
		_, ok := ParseLicensingStatus(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestTransitionTable(t *testing.T) {
	allowed := []struct{ from, to LicensingStatus }{
		{StatusPending, StatusInReview},
		{StatusPending, StatusRejected},
		{StatusInReview, StatusNegotiating},
		{StatusInReview, StatusApproved},
		{StatusInReview, StatusRejected},
		{StatusNegotiating, StatusApproved},
		{StatusNegotiating, StatusRejected},
		{StatusNegotiating, StatusInReview},
		{StatusApproved, StatusExpired},
		{StatusRejected, StatusPending},
		{StatusExpired, StatusPending},
	}

	allowedSet := make(map[[2]LicensingStatus]bool, len(allowed))
	for _, tr := range allowed {
		allowedSet[[2]LicensingStatus{tr.from, tr.to}] = true
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s should be legal", tr.from, tr.to)
	}

	// Everything not listed, self-transitions included, is illegal.
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			if allowedSet[[2]LicensingStatus{from, to}] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s should be illegal", from, to)
		}
	}
}

func TestNoTerminalStatus(t *testing.T) {
	// Every status has at least one way out; licenses can always move.
	for _, status := range AllStatuses {
		assert.NotEmpty(t, StatusTransitions[status], "%s has no outgoing transitions", status)
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("archived", StatusPending))
	assert.False(t, CanTransition(StatusPending, "archived"))
}
