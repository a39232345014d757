package model

import "time"

type BookingStatus string

const (
	BookingInitiated          BookingStatus = "INITIATED"
	BookingPaymentPending     BookingStatus = "PAYMENT_PENDING"
	BookingPaymentSuccess     BookingStatus = "PAYMENT_SUCCESS"
	BookingConfirmingProvider BookingStatus = "CONFIRMING_PROVIDER"
	BookingConfirmed          BookingStatus = "CONFIRMED"
	BookingRefunded           BookingStatus = "REFUNDED"
	BookingFailed             BookingStatus = "FAILED"
	BookingCancelled          BookingStatus = "CANCELLED"
	BookingPendingApproval    BookingStatus = "PENDING_APPROVAL"
)

// Terminal reports whether the status ends the booking lifecycle. Terminal
// bookings are what the history endpoint returns.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingConfirmed, BookingRefunded, BookingFailed, BookingCancelled:
		return true
	}
	return false
}

// FareBreakdown carries every component that went into the payable total.
// Total is always Subtotal() minus Discount floored at zero, plus MethodFee,
// minus GiftCardAmount floored at zero, in that order.
type FareBreakdown struct {
	BaseFare           int64 `json:"base_fare" bson:"base_fare"`
	SeatCost           int64 `json:"seat_cost" bson:"seat_cost"`
	MealCost           int64 `json:"meal_cost" bson:"meal_cost"`
	SpecialRequestCost int64 `json:"special_request_cost" bson:"special_request_cost"`
	Discount           int64 `json:"discount" bson:"discount"`
	MethodFee          int64 `json:"method_fee" bson:"method_fee"`
	GiftCardAmount     int64 `json:"gift_card_amount" bson:"gift_card_amount"`
	Total              int64 `json:"total" bson:"total"`
}

func (f FareBreakdown) Subtotal() int64 {
	return f.BaseFare + f.SeatCost + f.MealCost + f.SpecialRequestCost
}

type Booking struct {
	ID            string        `json:"id,omitempty" bson:"_id,omitempty"`
	SessionID     string        `json:"session_id" bson:"session_id"`
	UserID        string        `json:"user_id" bson:"user_id"`
	Option        TravelOption  `json:"option" bson:"option"`
	Passengers    []Passenger   `json:"passengers" bson:"passengers"`
	SelectedSeats []string      `json:"selected_seats,omitempty" bson:"selected_seats,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method" bson:"payment_method"`
	BillingMode   BillingMode   `json:"billing_mode" bson:"billing_mode"`
	Fare          FareBreakdown `json:"fare" bson:"fare"`
	PromoCode     string        `json:"promo_code,omitempty" bson:"promo_code,omitempty"`
	GiftCardCode  string        `json:"gift_card_code,omitempty" bson:"gift_card_code,omitempty"`
	Status        BookingStatus `json:"status" bson:"status"`
	ProviderRef   string        `json:"provider_ref,omitempty" bson:"provider_ref,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty" bson:"failure_reason,omitempty"`
	RefundAmount  int64         `json:"refund_amount,omitempty" bson:"refund_amount,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}
