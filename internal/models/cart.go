package models

import "time"

// CartItem is a course selected for registration but not yet committed.
type CartItem struct {
	Course  Course    `json:"course"`
	AddedAt time.Time `json:"added_at"`
}

// CreditPolicy bounds the combined enrolled+cart credit total for a term.
// Max is enforced at cart admission; Min is advisory only.
type CreditPolicy struct {
	MinCredits int `json:"min_credits"`
	MaxCredits int `json:"max_credits"`
}

// CartCredits sums credit weights across cart items.
func CartCredits(items []CartItem) int {
	total := 0
	for _, item := range items {
		credits := item.Course.Credits
		if credits <= 0 {
			credits = DefaultCourseCredits
		}
		total += credits
	}
	return total
}
