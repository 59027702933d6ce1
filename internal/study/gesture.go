package study

import "github.com/conorfennell/kotoba/internal/domain"

// DefaultSwipeThreshold is the drag distance, in CSS pixels, a swipe must exceed.
const DefaultSwipeThreshold = 90

// ClassifySwipe maps a released drag to a decision: right is known, left
// is unknown, up is ambiguous. Horizontal wins over vertical.
func ClassifySwipe(dx, dy, threshold float64) (domain.Status, bool) {
	switch {
	case dx > threshold:
		return domain.StatusKnown, true
	case dx < -threshold:
		return domain.StatusUnknown, true
	case dy < -threshold:
		return domain.StatusAmbiguous, true
	}
	return "", false
}
