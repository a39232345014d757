package model

import "time"

type TravelMode string

const (
	ModeFlight TravelMode = "flight"
	ModeTrain  TravelMode = "train"
	ModeBus    TravelMode = "bus"
	ModeCab    TravelMode = "cab"
	ModeMixed  TravelMode = "mixed"
)

// SeatAndMealEligible reports whether the mode carries seat and meal
// selection steps. Cab and mixed itineraries have neither.
func (m TravelMode) SeatAndMealEligible() bool {
	return m != ModeCab && m != ModeMixed
}

type CheckoutStep string

const (
	StepReview          CheckoutStep = "REVIEW"
	StepSeatSelection   CheckoutStep = "SEAT_SELECTION"
	StepMealSelection   CheckoutStep = "MEAL_SELECTION"
	StepSpecialRequests CheckoutStep = "SPECIAL_REQUESTS"
	StepPayment         CheckoutStep = "PAYMENT"
	StepProcessing      CheckoutStep = "PROCESSING"
	StepConfirmed       CheckoutStep = "CONFIRMED"
	StepFailed          CheckoutStep = "FAILED"
	StepPendingApproval CheckoutStep = "PENDING_APPROVAL"
)

type BillingMode string

const (
	BillingPersonal  BillingMode = "personal"
	BillingCorporate BillingMode = "corporate"
)

type PaymentMethod string

const (
	MethodUPI        PaymentMethod = "upi"
	MethodCard       PaymentMethod = "card"
	MethodNetbanking PaymentMethod = "netbanking"
	MethodWallet     PaymentMethod = "wallet"
)

// TravelOption is the priced inventory snapshot the checkout was started
// from. Amounts are whole INR.
type TravelOption struct {
	Mode          TravelMode `json:"mode" bson:"mode" validate:"required,oneof=flight train bus cab mixed"`
	ProviderCode  string     `json:"provider_code" bson:"provider_code" validate:"required,min=2,max=40"`
	RouteLabel    string     `json:"route_label" bson:"route_label" validate:"required,min=2,max=120"`
	DepartureTime time.Time  `json:"departure_time" bson:"departure_time" validate:"required"`
	BaseFare      int64      `json:"base_fare" bson:"base_fare" validate:"required,min=1"`
}

type Passenger struct {
	Name  string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Age   int    `json:"age" bson:"age" validate:"required,min=1,max=120"`
	Phone string `json:"phone" bson:"phone" validate:"omitempty,e164"`
	Email string `json:"email" bson:"email" validate:"omitempty,email"`
}

// AppliedPromo records the accepted promo code and the discount it produced
// against the subtotal it was evaluated on.
type AppliedPromo struct {
	Code     string `json:"code" bson:"code"`
	Discount int64  `json:"discount" bson:"discount"`
}

// AppliedGiftCard records the redemption reserved during checkout. The card
// balance is only debited when the payment pipeline runs.
type AppliedGiftCard struct {
	Code   string `json:"code" bson:"code"`
	Amount int64  `json:"amount" bson:"amount"`
}

// CheckoutSession is one checkout attempt walking the step sequencer. Cost
// contributions are committed once per step and are purely additive; a step
// can never be revisited.
type CheckoutSession struct {
	ID                 string           `json:"id,omitempty" bson:"_id,omitempty"`
	UserID             string           `json:"user_id" bson:"user_id" validate:"required,min=1,max=64"`
	Option             TravelOption     `json:"option" bson:"option" validate:"required"`
	Passengers         []Passenger      `json:"passengers" bson:"passengers" validate:"required,min=1,max=9,dive"`
	BillingMode        BillingMode      `json:"billing_mode" bson:"billing_mode" validate:"required,oneof=personal corporate"`
	PaymentMethod      PaymentMethod    `json:"payment_method" bson:"payment_method" validate:"required,oneof=upi card netbanking wallet"`
	CurrentStep        CheckoutStep     `json:"current_step" bson:"current_step"`
	SelectedSeats      []string         `json:"selected_seats,omitempty" bson:"selected_seats,omitempty"`
	SeatCost           int64            `json:"seat_cost" bson:"seat_cost"`
	MealCost           int64            `json:"meal_cost" bson:"meal_cost"`
	SpecialRequestCost int64            `json:"special_request_cost" bson:"special_request_cost"`
	Promo              *AppliedPromo    `json:"promo,omitempty" bson:"promo,omitempty"`
	GiftCard           *AppliedGiftCard `json:"gift_card,omitempty" bson:"gift_card,omitempty"`
	BookingID          string           `json:"booking_id,omitempty" bson:"booking_id,omitempty"`
	CreatedAt          time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" bson:"updated_at"`
}

// Subtotal is the pre-discount sum of the base fare and every committed
// step contribution.
func (s *CheckoutSession) Subtotal() int64 {
	return s.Option.BaseFare + s.SeatCost + s.MealCost + s.SpecialRequestCost
}

func (s *CheckoutSession) Terminated() bool {
	switch s.CurrentStep {
	case StepConfirmed, StepFailed, StepPendingApproval:
		return true
	}
	return false
}
