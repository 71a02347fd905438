package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValidation(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, IsValidOrderStatus(s), s)
	}
	assert.False(t, IsValidOrderStatus("shipped"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestSubscriptionStatusValidation(t *testing.T) {
	for _, s := range SubscriptionStatuses {
		assert.True(t, IsValidSubscriptionStatus(s), s)
	}
	assert.False(t, IsValidSubscriptionStatus("suspended"))
}

func TestTerminalSubscriptionStatuses(t *testing.T) {
	assert.True(t, IsTerminalSubscriptionStatus(SubscriptionCancelled))
	assert.True(t, IsTerminalSubscriptionStatus(SubscriptionExpired))
	assert.False(t, IsTerminalSubscriptionStatus(SubscriptionActive))
	assert.False(t, IsTerminalSubscriptionStatus(SubscriptionPaused))
}

func TestRoleValidation(t *testing.T) {
	for _, r := range UserRoles {
		assert.True(t, IsValidRole(r), r)
	}
	assert.False(t, IsValidRole("superadmin"))
}

func TestMealSlotValidation(t *testing.T) {
	assert.True(t, IsValidMealSlot(SlotLunch))
	assert.True(t, IsValidMealSlot(SlotDinner))
	assert.False(t, IsValidMealSlot("breakfast"))
}
