package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMembershipIsActiveNow(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	from := now.AddDate(0, -1, 0)
	until := now.AddDate(0, 1, 0)

	m := &Membership{Status: MembershipStatusActive, ValidFrom: &from, ValidUntil: &until}
	assert.True(t, m.IsActiveNow(now))
	assert.False(t, m.IsActiveNow(until), "expiry instant is exclusive")
	assert.False(t, m.IsActiveNow(from.AddDate(0, -1, 0)))

	lifetime := &Membership{Status: MembershipStatusActive, ValidFrom: &from}
	assert.True(t, lifetime.IsActiveNow(now.AddDate(50, 0, 0)))

	pending := &Membership{Status: MembershipStatusPending, ValidFrom: &from, ValidUntil: &until}
	assert.False(t, pending.IsActiveNow(now))
}

func TestMembershipPlanIsLifetime(t *testing.T) {
	assert.True(t, (&MembershipPlan{DurationMonths: 0}).IsLifetime())
	assert.False(t, (&MembershipPlan{DurationMonths: 12}).IsLifetime())
}
