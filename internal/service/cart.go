package service

import (
	"time"

	"github.com/noah-isme/sis-reg-api/internal/models"
	appErrors "github.com/noah-isme/sis-reg-api/pkg/errors"
)

// Cart is the in-memory working set of course selections for one
// registration session. It is not safe for concurrent use on its own; the
// owning session serialises access.
type Cart struct {
	items []models.CartItem
}

// Admit runs the synchronous admission checks for a course against the
// current enrollments and the credit policy. It does not mutate the cart:
// eligibility still has to be confirmed before Append. Admission failures
// block the mutation and are never retried.
func (c *Cart) Admit(course models.Course, enrolledIDs map[string]struct{}, enrolledCredits int, policy models.CreditPolicy) error {
	if _, ok := enrolledIDs[course.ID]; ok {
		return appErrors.Clone(appErrors.ErrAlreadyEnrolled, "")
	}
	if c.Contains(course.ID) {
		return appErrors.Clone(appErrors.ErrAlreadyInCart, "")
	}

	credits := course.Credits
	if credits <= 0 {
		credits = models.DefaultCourseCredits
	}
	projected := enrolledCredits + c.Credits() + credits
	if policy.MaxCredits > 0 && projected > policy.MaxCredits {
		return appErrors.Clone(appErrors.ErrCreditLimitExceeded, "")
	}
	return nil
}

// Append adds an admitted course to the cart.
func (c *Cart) Append(course models.Course) {
	c.items = append(c.items, models.CartItem{Course: course, AddedAt: time.Now().UTC()})
}

// Remove deletes a course from the cart. Removing an absent course is a
// no-op.
func (c *Cart) Remove(courseID string) {
	for i, item := range c.items {
		if item.Course.ID == courseID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Contains reports whether the course is already queued.
func (c *Cart) Contains(courseID string) bool {
	for _, item := range c.items {
		if item.Course.ID == courseID {
			return true
		}
	}
	return false
}

// Credits sums the credit weights of queued items.
func (c *Cart) Credits() int {
	return models.CartCredits(c.items)
}

// Items returns a copy of the queued items in insertion order.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of queued items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}
