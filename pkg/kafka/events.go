package kafka

import "time"

// Booking lifecycle event types published to the booking events topic.
const (
	EventBookingConfirmed       = "booking_confirmed"
	EventBookingFailed          = "booking_failed"
	EventBookingRefunded        = "booking_refunded"
	EventBookingCancelled       = "booking_cancelled"
	EventBookingPendingApproval = "booking_pending_approval"
)

// BookingEvent is the payload the checkout service publishes and the
// notifier consumes. Contact fields come from the lead passenger.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	Mode          string    `json:"mode"`
	RouteLabel    string    `json:"route_label"`
	ProviderRef   string    `json:"provider_ref,omitempty"`
	Total         int64     `json:"total"`
	RefundAmount  int64     `json:"refund_amount,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	DepartureTime time.Time `json:"departure_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}
