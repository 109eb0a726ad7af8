package entity

import (
	"fmt"
	"time"
)

// SubscriptionStatus is the lifecycle state of a Subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Subscription is a paid plan held by an account.
// No endpoint manages subscriptions; the type documents the billing record shape.
type Subscription struct {
	UserID      string
	Plan        Plan
	Price       int
	Status      SubscriptionStatus
	StartDate   time.Time
	RenewalDate time.Time
	Features    PlanFeatures
	CreatedAt   time.Time
}

// NewSubscription builds an active subscription for a paid plan, renewing one month after now.
func NewSubscription(userID string, plan Plan, now time.Time) (*Subscription, error) {
	offer, ok := PlanCatalog[plan]
	if !ok {
		return nil, fmt.Errorf("plan %q has no offer", plan)
	}
	return &Subscription{
		UserID:      userID,
		Plan:        plan,
		Price:       offer.Price,
		Status:      SubscriptionActive,
		StartDate:   now,
		RenewalDate: now.AddDate(0, 1, 0),
		Features:    offer.Features,
		CreatedAt:   now,
	}, nil
}

// IsActive reports whether the subscription is active and not past its renewal date.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionActive && now.Before(s.RenewalDate)
}
