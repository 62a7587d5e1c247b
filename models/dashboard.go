package models

import "time"

// FeedState is the lifecycle state of the live bookings feed.
type FeedState string

const (
	FeedLoading        FeedState = "loading"
	FeedReady          FeedState = "ready"
	FeedReadyWithError FeedState = "ready_with_error"
	FeedUnsubscribed   FeedState = "unsubscribed"
)

// DashboardView is a point-in-time copy of the feed's display state.
type DashboardView struct {
	Loading   bool      `json:"loading"`
	State     FeedState `json:"state"`
	Bookings  []Booking `json:"bookings"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
