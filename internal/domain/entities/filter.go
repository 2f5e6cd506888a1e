package entities

import (
	"strings"
	"time"
)

// OrderPredicate decides whether an order line belongs in a result set.
// Predicates compose with Filter so every UI filter (search, status, payment,
// date) is an explicit function over the typed in-memory collection instead of
// ad hoc branching per caller.
type OrderPredicate func(Order) bool

// Filter returns the orders matching every given predicate.
func Filter(orders []Order, preds ...OrderPredicate) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		keep := true
		for _, p := range preds {
			if !p(o) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, o)
		}
	}
	return out
}

// MatchesOrderNumber matches order numbers containing the fragment as a
// case-insensitive substring. Partial codes are a deliberate feature: admins
// paste fragments like "00001" and expect every line of that checkout.
func MatchesOrderNumber(fragment string) OrderPredicate {
	frag := strings.ToLower(fragment)
	return func(o Order) bool {
		return strings.Contains(strings.ToLower(o.OrderNumber), frag)
	}
}

// MatchesSearch matches customer name or order number by case-insensitive
// substring.
func MatchesSearch(term string) OrderPredicate {
	t := strings.ToLower(term)
	return func(o Order) bool {
		return strings.Contains(strings.ToLower(o.Name), t) ||
			strings.Contains(strings.ToLower(o.OrderNumber), t)
	}
}

// HasStatusIn keeps orders whose status is in the given set. An empty set
// keeps everything.
func HasStatusIn(statuses []OrderStatus) OrderPredicate {
	if len(statuses) == 0 {
		return func(Order) bool { return true }
	}
	set := make(map[OrderStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return func(o Order) bool {
		_, ok := set[o.Status]
		return ok
	}
}

// HasPaymentStatusIn keeps orders whose payment status is in the given set.
// An empty set keeps everything.
func HasPaymentStatusIn(statuses []PaymentStatus) OrderPredicate {
	if len(statuses) == 0 {
		return func(Order) bool { return true }
	}
	set := make(map[PaymentStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return func(o Order) bool {
		_, ok := set[o.PaymentStatus]
		return ok
	}
}

// PaymentConfirmedOnly keeps orders with a confirmed payment, the gate for
// profit analytics.
func PaymentConfirmedOnly() OrderPredicate {
	return func(o Order) bool { return o.PaymentStatus == PaymentConfirmed }
}

// InMonth keeps orders dated in the given calendar month and year. Orders
// with an unknown date never match.
func InMonth(month time.Month, year int) OrderPredicate {
	return func(o Order) bool {
		return o.DateKnown() && o.OrderDate.Month() == month && o.OrderDate.Year() == year
	}
}

// OnDay keeps orders dated on the exact calendar day. Orders with an unknown
// date never match.
func OnDay(day int, month time.Month, year int) OrderPredicate {
	return func(o Order) bool {
		return o.DateKnown() &&
			o.OrderDate.Day() == day &&
			o.OrderDate.Month() == month &&
			o.OrderDate.Year() == year
	}
}

// customStyleMarkers are the style fragments that route a line into the
// custom/hand-painted analytics slice.
var customStyleMarkers = []string{"custom", "hand painted", "handpainted"}

// IsCustomStyle reports whether the item style text marks a custom or
// hand-painted variant.
func IsCustomStyle(style string) bool {
	s := strings.ToLower(style)
	for _, marker := range customStyleMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
