package models

// Single source of truth for role and status vocabularies. Admin handlers
// validate every mutation against these sets instead of keeping their own
// string lists.

// Meal slots
const (
	SlotLunch  = "lunch"
	SlotDinner = "dinner"
)

// Order statuses
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

// Subscription statuses
const (
	SubscriptionActive    = "active"
	SubscriptionPaused    = "paused"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// User roles
const (
	RoleCustomer      = "customer"
	RoleRestaurant    = "restaurant"
	RoleDeliveryStaff = "deliveryStaff"
	RoleAdmin         = "admin"
)

var OrderStatuses = []string{OrderPending, OrderAccepted, OrderCompleted, OrderCancelled}

var SubscriptionStatuses = []string{SubscriptionActive, SubscriptionPaused, SubscriptionCancelled, SubscriptionExpired}

var UserRoles = []string{RoleCustomer, RoleRestaurant, RoleDeliveryStaff, RoleAdmin}

// MealSlots are the valid per-day scheduling buckets
var MealSlots = []string{SlotLunch, SlotDinner}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidOrderStatus reports whether s is a known order status
func IsValidOrderStatus(s string) bool {
	return contains(OrderStatuses, s)
}

// IsValidSubscriptionStatus reports whether s is a known subscription status
func IsValidSubscriptionStatus(s string) bool {
	return contains(SubscriptionStatuses, s)
}

// IsTerminalSubscriptionStatus reports whether a subscription in status s
// can no longer transition. Cancelled and expired subscriptions stay put.
func IsTerminalSubscriptionStatus(s string) bool {
	return s == SubscriptionCancelled || s == SubscriptionExpired
}

// IsValidRole reports whether s is a known user role
func IsValidRole(s string) bool {
	return contains(UserRoles, s)
}

// IsValidMealSlot reports whether s is a known meal slot
func IsValidMealSlot(s string) bool {
	return contains(MealSlots, s)
}
