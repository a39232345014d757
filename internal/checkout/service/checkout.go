package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	checkouterrors "tripdesk/internal/checkout/errors"
	"tripdesk/internal/checkout/repository"
	"tripdesk/internal/checkout/validator"
	giftcards "tripdesk/internal/giftcards/service"
	"tripdesk/internal/payments"
	policy "tripdesk/internal/policy/service"
	providers "tripdesk/internal/providers/client"
	wallet "tripdesk/internal/wallet/service"
	"tripdesk/pkg/config"
	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/kafka"
	"tripdesk/pkg/model"
	"tripdesk/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// StepPayload carries the selections a confirm request commits for the
// session's current step. Only the field matching the step is read.
type StepPayload struct {
	Seats           []string `json:"seats,omitempty"`
	Meals           []string `json:"meals,omitempty"`
	SpecialRequests []string `json:"special_requests,omitempty"`
}

type CheckoutService interface {
	Start(ctx context.Context, session *model.CheckoutSession) (*model.CheckoutSession, error)
	Get(ctx context.Context, sessionID, userID string) (*model.CheckoutSession, error)
	ConfirmStep(ctx context.Context, sessionID, userID string, step model.CheckoutStep, payload StepPayload) (*model.CheckoutSession, error)
	SkipStep(ctx context.Context, sessionID, userID string, step model.CheckoutStep) (*model.CheckoutSession, error)
	ApplyPromo(ctx context.Context, sessionID, userID, code string) (*model.CheckoutSession, error)
	ApplyGiftCard(ctx context.Context, sessionID, userID, code string) (*model.CheckoutSession, error)
	Pay(ctx context.Context, sessionID, userID, attemptKey string) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID, userID string) (*model.Booking, error)
	GetBooking(ctx context.Context, bookingID, userID string) (*model.Booking, error)
	History(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
}

// Deps wires the checkout orchestrator to its collaborators.
type Deps struct {
	Cfg       *config.Config
	Sessions  repository.SessionRepository
	Bookings  repository.BookingRepository
	Seats     repository.SeatHoldRepository
	Promos    repository.PromoRepository
	Wallet    wallet.WalletService
	GiftCards giftcards.GiftCardService
	Policy    policy.PolicyService
	Gateway   payments.Gateway
	Provider  providers.ConfirmationClient
	Events    EventPublisher
	Validator *validator.CheckoutValidator
}

type checkoutService struct {
	cfg       *config.Config
	sessions  repository.SessionRepository
	bookings  repository.BookingRepository
	seats     repository.SeatHoldRepository
	promos    repository.PromoRepository
	wallet    wallet.WalletService
	giftCards giftcards.GiftCardService
	policy    policy.PolicyService
	gateway   payments.Gateway
	provider  providers.ConfirmationClient
	events    EventPublisher
	validator *validator.CheckoutValidator
	now       func() time.Time
}

func NewCheckoutService(d Deps) CheckoutService {
	return &checkoutService{
		cfg:       d.Cfg,
		sessions:  d.Sessions,
		bookings:  d.Bookings,
		seats:     d.Seats,
		promos:    d.Promos,
		wallet:    d.Wallet,
		giftCards: d.GiftCards,
		policy:    d.Policy,
		gateway:   d.Gateway,
		provider:  d.Provider,
		events:    d.Events,
		validator: d.Validator,
		now:       time.Now,
	}
}

// Start opens a checkout session at the review step for a priced travel
// option.
func (s *checkoutService) Start(ctx context.Context, session *model.CheckoutSession) (*model.CheckoutSession, error) {
	session.ID = uuid.New().String()
	session.CurrentStep = model.StepReview
	session.SelectedSeats = nil
	session.SeatCost = 0
	session.MealCost = 0
	session.SpecialRequestCost = 0
	session.Promo = nil
	session.GiftCard = nil
	session.BookingID = ""

	for i := range session.Passengers {
		p := &session.Passengers[i]
		p.Name = sanitizer.NormalizeName(p.Name)
		p.Email = sanitizer.NormalizeEmail(p.Email)
		if p.Phone != "" {
			phone := sanitizer.NormalizePhone(p.Phone)
			if phone == "" {
				return nil, apperrors.InvalidInput("Passenger phone number is not valid")
			}
			p.Phone = phone
		}
	}

	if err := s.validator.ValidateSession(session); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.cfg.Log.Error("Failed to create checkout session", "user_id", session.UserID, "error", err)
		return nil, apperrors.Internal("Failed to start checkout", err)
	}

	s.cfg.Log.Info("Checkout started",
		"session_id", session.ID,
		"user_id", session.UserID,
		"mode", session.Option.Mode,
		"base_fare", session.Option.BaseFare,
	)
	return session, nil
}

func (s *checkoutService) Get(ctx context.Context, sessionID, userID string) (*model.CheckoutSession, error) {
	return s.loadSession(ctx, sessionID, userID)
}

// ConfirmStep commits the payload for the session's current step and
// advances the sequence. Arriving at the payment step freezes the fare into
// a booking.
func (s *checkoutService) ConfirmStep(ctx context.Context, sessionID, userID string, step model.CheckoutStep, payload StepPayload) (*model.CheckoutSession, error) {
	session, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkStep(session, step); err != nil {
		return nil, err
	}

	switch step {
	case model.StepReview:
		// Confirming the review commits no cost.
	case model.StepSeatSelection:
		if err := s.commitSeats(ctx, session, payload.Seats); err != nil {
			return nil, err
		}
	case model.StepMealSelection:
		if err := s.commitMeals(session, payload.Meals); err != nil {
			return nil, err
		}
	case model.StepSpecialRequests:
		if err := s.commitSpecialRequests(session, payload.SpecialRequests); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.InvalidInput("Step cannot be confirmed")
	}

	return s.advanceAndPersist(ctx, session)
}

// SkipStep advances past an optional step, committing zero cost for it.
func (s *checkoutService) SkipStep(ctx context.Context, sessionID, userID string, step model.CheckoutStep) (*model.CheckoutSession, error) {
	if !skippable(step) {
		return nil, apperrors.InvalidInput("Step cannot be skipped")
	}

	session, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkStep(session, step); err != nil {
		return nil, err
	}

	return s.advanceAndPersist(ctx, session)
}

// ApplyPromo attaches a promo code to the session. The discount is computed
// against the current subtotal and recomputed at payment time.
func (s *checkoutService) ApplyPromo(ctx context.Context, sessionID, userID, code string) (*model.CheckoutSession, error) {
	session, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Terminated() || session.CurrentStep == model.StepProcessing {
		return nil, apperrors.Conflict("Checkout session no longer accepts promo codes")
	}

	code = sanitizer.NormalizeCode(code)
	if code == "" {
		return nil, apperrors.InvalidInput("Promo code cannot be empty")
	}

	rule, err := s.promos.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return nil, apperrors.NotFound("Promo code")
		}
		return nil, apperrors.Internal("Failed to look up promo code", err)
	}

	applied, err := evaluatePromo(rule, session.Subtotal())
	if err != nil {
		return nil, err
	}

	session.Promo = applied
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, apperrors.Internal("Failed to apply promo code", err)
	}

	s.cfg.Log.Info("Promo applied",
		"session_id", session.ID,
		"code", applied.Code,
		"discount", applied.Discount,
	)
	return session, nil
}

// ApplyGiftCard reserves a redemption against the session. The card balance
// is only debited when the payment pipeline runs.
func (s *checkoutService) ApplyGiftCard(ctx context.Context, sessionID, userID, code string) (*model.CheckoutSession, error) {
	session, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Terminated() || session.CurrentStep == model.StepProcessing {
		return nil, apperrors.Conflict("Checkout session no longer accepts gift cards")
	}

	card, err := s.giftCards.Validate(ctx, code)
	if err != nil {
		return nil, err
	}

	payable := s.payableBeforeGiftCard(session)
	amount := giftCardCap(card.Balance, payable)
	if amount <= 0 {
		return nil, apperrors.InvalidInput("Nothing left to pay; the gift card cannot be applied")
	}

	session.GiftCard = &model.AppliedGiftCard{Code: card.Code, Amount: amount}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, apperrors.Internal("Failed to apply gift card", err)
	}

	s.cfg.Log.Info("Gift card applied",
		"session_id", session.ID,
		"code", card.Code,
		"amount", amount,
	)
	return session, nil
}

// Pay runs the two-phase payment pipeline for a session sitting at the
// payment step. Corporate sessions are checked against travel policy first
// and may park in pending approval instead of paying.
func (s *checkoutService) Pay(ctx context.Context, sessionID, userID, attemptKey string) (*model.Booking, error) {
	session, err := s.loadSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkStep(session, model.StepPayment); err != nil {
		return nil, err
	}
	if session.BookingID == "" {
		return nil, apperrors.Internal("Checkout session has no booking", nil)
	}
	if attemptKey == "" {
		attemptKey = uuid.New().String()
	}

	booking, err := s.bookings.FindByID(ctx, session.BookingID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load booking", err)
	}

	// Promo and gift card may have changed since arrival at the payment
	// step; the booking carries the final recomputed fare.
	s.refreshPromo(ctx, session)
	booking.Fare = s.fareFor(session)
	booking.PromoCode = promoCode(session)
	booking.GiftCardCode = giftCardCode(session)

	if session.BillingMode == model.BillingCorporate {
		result := s.policy.CheckCompliance(booking.Fare.Total, session.Option.Mode, session.Option.DepartureTime)
		for _, v := range result.Violations {
			s.cfg.Log.Warn("Corporate policy violation",
				"booking_id", booking.ID,
				"rule", v.Rule,
				"message", v.Message,
			)
		}
		if result.RequiresApproval {
			return s.parkForApproval(ctx, session, booking, result.Violations)
		}
	}

	booking.Status = model.BookingPaymentPending
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, apperrors.Internal("Failed to update booking", err)
	}
	session.CurrentStep = model.StepProcessing
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, apperrors.Internal("Failed to update checkout session", err)
	}

	failedStep, pipeErr := runPipeline(ctx, s.cfg.Log, s.paymentPipeline(session, booking, attemptKey))
	if pipeErr != nil {
		return s.finishFailed(ctx, session, booking, failedStep, pipeErr)
	}

	booking.Status = model.BookingConfirmed
	booking.FailureReason = ""
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, apperrors.Internal("Failed to record booking confirmation", err)
	}
	session.CurrentStep = model.StepConfirmed
	if err := s.sessions.Update(ctx, session); err != nil {
		s.cfg.Log.Error("Failed to mark session confirmed", "session_id", session.ID, "error", err)
	}

	s.publish(ctx, kafka.EventBookingConfirmed, booking)
	s.cfg.Log.Info("Booking confirmed",
		"booking_id", booking.ID,
		"provider_ref", booking.ProviderRef,
		"total", booking.Fare.Total,
	)
	return booking, nil
}

// paymentPipeline assembles the compensable legs of the payment run. Order
// is fixed: gift card redemption, capture, provider confirmation. A failed
// leg unwinds every completed leg in reverse.
func (s *checkoutService) paymentPipeline(session *model.CheckoutSession, booking *model.Booking, attemptKey string) []pipelineStep {
	var steps []pipelineStep

	if session.GiftCard != nil && booking.Fare.GiftCardAmount > 0 {
		card := session.GiftCard.Code
		amount := booking.Fare.GiftCardAmount
		steps = append(steps, pipelineStep{
			name: "gift_card_redeem",
			run: func(ctx context.Context) error {
				return s.giftCards.Redeem(ctx, card, amount)
			},
			compensate: func(ctx context.Context) {
				if err := s.giftCards.Restore(ctx, card, amount); err != nil {
					s.cfg.Log.Error("Gift card restore failed",
						"booking_id", booking.ID, "code", card, "amount", amount, "error", err)
				}
			},
		})
	}

	if booking.Fare.Total > 0 {
		steps = append(steps, pipelineStep{
			name: "payment_capture",
			run: func(ctx context.Context) error {
				if err := s.capture(ctx, booking, attemptKey); err != nil {
					return err
				}
				booking.Status = model.BookingPaymentSuccess
				if err := s.bookings.Update(ctx, booking); err != nil {
					s.cfg.Log.Error("Failed to record payment success", "booking_id", booking.ID, "error", err)
				}
				return nil
			},
			compensate: func(ctx context.Context) {
				err := s.wallet.Credit(ctx, booking.UserID, booking.Fare.Total, booking.ID, "payment refund")
				if err != nil {
					s.cfg.Log.Error("Wallet refund failed",
						"booking_id", booking.ID, "amount", booking.Fare.Total, "error", err)
					return
				}
				booking.RefundAmount = booking.Fare.Total
			},
		})
	}

	steps = append(steps, pipelineStep{
		name: "provider_confirm",
		run: func(ctx context.Context) error {
			booking.Status = model.BookingConfirmingProvider
			if err := s.bookings.Update(ctx, booking); err != nil {
				s.cfg.Log.Error("Failed to record provider confirmation start", "booking_id", booking.ID, "error", err)
			}
			ref, err := s.provider.Confirm(ctx, booking, attemptKey)
			if err != nil {
				return err
			}
			booking.ProviderRef = ref
			return nil
		},
	})

	return steps
}

func (s *checkoutService) capture(ctx context.Context, booking *model.Booking, attemptKey string) error {
	if booking.PaymentMethod == model.MethodWallet {
		return s.wallet.Debit(ctx, booking.UserID, booking.Fare.Total, booking.ID, "booking payment")
	}
	return s.gateway.Capture(ctx, payments.CaptureRequest{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Amount:    booking.Fare.Total,
		Method:    booking.PaymentMethod,
	}, attemptKey)
}

// finishFailed records the terminal state after a pipeline failure.
// Compensation already ran; a refunded capture makes the booking REFUNDED,
// anything earlier makes it FAILED.
func (s *checkoutService) finishFailed(ctx context.Context, session *model.CheckoutSession, booking *model.Booking, failedStep string, pipeErr error) (*model.Booking, error) {
	booking.FailureReason = failureReason(failedStep, pipeErr)

	eventType := kafka.EventBookingFailed
	booking.Status = model.BookingFailed
	if booking.RefundAmount > 0 {
		booking.Status = model.BookingRefunded
		eventType = kafka.EventBookingRefunded
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, apperrors.Internal("Failed to record booking failure", err)
	}
	session.CurrentStep = model.StepFailed
	if err := s.sessions.Update(ctx, session); err != nil {
		s.cfg.Log.Error("Failed to mark session failed", "session_id", session.ID, "error", err)
	}

	s.releaseSeats(ctx, session)
	s.publish(ctx, eventType, booking)

	s.cfg.Log.Warn("Booking did not complete",
		"booking_id", booking.ID,
		"status", booking.Status,
		"failed_step", failedStep,
		"error", pipeErr,
	)
	return booking, nil
}

// parkForApproval moves a policy-violating corporate booking into the
// approval queue without touching any money.
func (s *checkoutService) parkForApproval(ctx context.Context, session *model.CheckoutSession, booking *model.Booking, violations []model.PolicyViolation) (*model.Booking, error) {
	booking.Status = model.BookingPendingApproval
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, apperrors.Internal("Failed to update booking", err)
	}
	session.CurrentStep = model.StepPendingApproval
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, apperrors.Internal("Failed to update checkout session", err)
	}

	if _, err := s.policy.SubmitForApproval(ctx, booking, violations); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingPendingApproval, booking)
	return booking, nil
}

// Cancel cancels a confirmed booking and credits the tiered refund to the
// user's wallet.
func (s *checkoutService) Cancel(ctx context.Context, bookingID, userID string) (*model.Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking.Status != model.BookingConfirmed {
		return nil, apperrors.Conflict("Only confirmed bookings can be cancelled")
	}

	refund := booking.Fare.Total * refundPercent(s.now(), booking.Option.DepartureTime, s.cfg) / 100
	if refund > 0 {
		if err := s.wallet.Credit(ctx, userID, refund, booking.ID, "booking cancellation refund"); err != nil {
			return nil, err
		}
	}

	booking.Status = model.BookingCancelled
	booking.RefundAmount = refund
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}

	s.publish(ctx, kafka.EventBookingCancelled, booking)
	s.cfg.Log.Info("Booking cancelled",
		"booking_id", booking.ID,
		"refund", refund,
	)
	return booking, nil
}

func (s *checkoutService) GetBooking(ctx context.Context, bookingID, userID string) (*model.Booking, error) {
	return s.loadBooking(ctx, bookingID, userID)
}

// History lists the user's terminal bookings, newest first. The count and
// the page are fetched concurrently.
func (s *checkoutService) History(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		wg       sync.WaitGroup
		bookings []*model.Booking
		count    int64
		findErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings, findErr = s.bookings.FindTerminalByUser(ctx, userID, limit, offset)
	}()
	go func() {
		defer wg.Done()
		count, countErr = s.bookings.CountTerminalByUser(ctx, userID)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, apperrors.Internal("Failed to list bookings", findErr)
	}
	if countErr != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", countErr)
	}
	return bookings, count, nil
}

func (s *checkoutService) loadSession(ctx context.Context, sessionID, userID string) (*model.CheckoutSession, error) {
	if sessionID == "" || userID == "" {
		return nil, apperrors.InvalidInput("Session ID and user ID are required")
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, checkouterrors.ErrSessionNotFound) {
			return nil, apperrors.NotFoundWithID("Checkout session", sessionID)
		}
		return nil, apperrors.Internal("Failed to load checkout session", err)
	}
	if session.UserID != userID {
		return nil, apperrors.NotFoundWithID("Checkout session", sessionID)
	}
	return session, nil
}

func (s *checkoutService) loadBooking(ctx context.Context, bookingID, userID string) (*model.Booking, error) {
	if bookingID == "" || userID == "" {
		return nil, apperrors.InvalidInput("Booking ID and user ID are required")
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, checkouterrors.ErrBookingNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		}
		return nil, apperrors.Internal("Failed to load booking", err)
	}
	if booking.UserID != userID {
		return nil, apperrors.NotFoundWithID("Booking", bookingID)
	}
	return booking, nil
}

func (s *checkoutService) checkStep(session *model.CheckoutSession, step model.CheckoutStep) error {
	err := ensureAtStep(session, step)
	switch {
	case errors.Is(err, checkouterrors.ErrSessionTerminated):
		return apperrors.Conflict("Checkout session has ended")
	case errors.Is(err, checkouterrors.ErrStepMismatch):
		return apperrors.Conflict(
			"Checkout session is at step " + string(session.CurrentStep) + ", not " + string(step))
	}
	return err
}

// commitSeats places Redis holds on the normalized seat labels and records
// the seat cost. A partially acquired selection is released before the
// conflict is reported.
func (s *checkoutService) commitSeats(ctx context.Context, session *model.CheckoutSession, seats []string) error {
	seats = sanitizer.NormalizeSeatLabels(seats)
	if err := s.validator.ValidateSeats(seats, len(session.Passengers)); err != nil {
		return apperrors.Validation(err.Error(), nil)
	}

	var held []string
	for _, seat := range seats {
		ok, err := s.seats.Acquire(ctx, session.Option, seat, session.ID, s.cfg.SeatHoldTTL)
		if err != nil {
			s.releaseHeld(ctx, session, held)
			return apperrors.Internal("Failed to hold seat", err)
		}
		if !ok {
			s.releaseHeld(ctx, session, held)
			return apperrors.Wrap(checkouterrors.ErrSeatUnavailable, apperrors.CodeConflict,
				"Seat "+seat+" is no longer available", http.StatusConflict)
		}
		held = append(held, seat)
	}

	session.SelectedSeats = seats
	session.SeatCost = int64(len(seats)) * s.cfg.SeatFee
	return nil
}

// commitMeals prices one meal per entry. Duplicates are legitimate; two
// passengers may order the same meal.
func (s *checkoutService) commitMeals(session *model.CheckoutSession, meals []string) error {
	var total int64
	var priced int

	for _, code := range meals {
		code = strings.ToLower(sanitizer.TrimAndNormalize(code))
		if code == "" {
			continue
		}
		price, ok := mealPrice(code)
		if !ok {
			return apperrors.InvalidInput("Unknown meal code " + code)
		}
		total += price
		priced++
	}

	if priced == 0 {
		return apperrors.InvalidInput("Confirm requires at least one meal; use skip instead")
	}
	if priced > len(session.Passengers) {
		return apperrors.InvalidInput("Meal count exceeds passenger count")
	}

	session.MealCost = total
	return nil
}

func (s *checkoutService) commitSpecialRequests(session *model.CheckoutSession, requests []string) error {
	requests = sanitizer.NormalizeSpecialRequests(requests)
	if err := s.validator.ValidateSpecialRequests(requests); err != nil {
		return apperrors.Validation(err.Error(), nil)
	}

	session.SpecialRequestCost = int64(len(requests)) * s.cfg.SpecialRequestFee
	return nil
}

// advanceAndPersist moves the session forward. Arriving at the payment step
// finalizes the fare: the booking and the session pointer to it are written
// in one transaction.
func (s *checkoutService) advanceAndPersist(ctx context.Context, session *model.CheckoutSession) (*model.CheckoutSession, error) {
	if err := advance(session); err != nil {
		return nil, apperrors.Internal("Failed to advance checkout", err)
	}

	if session.CurrentStep == model.StepPayment {
		if err := s.finalize(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, apperrors.Internal("Failed to update checkout session", err)
	}
	return session, nil
}

func (s *checkoutService) finalize(ctx context.Context, session *model.CheckoutSession) error {
	booking := &model.Booking{
		ID:            uuid.New().String(),
		SessionID:     session.ID,
		UserID:        session.UserID,
		Option:        session.Option,
		Passengers:    session.Passengers,
		SelectedSeats: session.SelectedSeats,
		PaymentMethod: session.PaymentMethod,
		BillingMode:   session.BillingMode,
		Fare:          s.fareFor(session),
		PromoCode:     promoCode(session),
		GiftCardCode:  giftCardCode(session),
		Status:        model.BookingInitiated,
	}
	session.BookingID = booking.ID

	err := s.sessions.ExecuteTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := s.bookings.Create(sc, booking); err != nil {
			return err
		}
		return s.sessions.Update(sc, session)
	})
	if err != nil {
		session.BookingID = ""
		return apperrors.Internal("Failed to finalize checkout", err)
	}

	s.cfg.Log.Info("Checkout finalized",
		"session_id", session.ID,
		"booking_id", booking.ID,
		"total", booking.Fare.Total,
	)
	return nil
}

// refreshPromo re-evaluates an applied promo against the final subtotal.
// Costs only accumulate after a code is applied, so a percent discount can
// grow between application and payment. A rule that vanished or deactivated
// in the meantime keeps the discount committed at application time.
func (s *checkoutService) refreshPromo(ctx context.Context, session *model.CheckoutSession) {
	if session.Promo == nil {
		return
	}
	rule, err := s.promos.FindByCode(ctx, session.Promo.Code)
	if err != nil {
		return
	}
	applied, err := evaluatePromo(rule, session.Subtotal())
	if err != nil {
		return
	}
	session.Promo = applied
}

// payableBeforeGiftCard is the amount a gift card would be applied against:
// subtotal less discount floored at zero, plus the method fee.
func (s *checkoutService) payableBeforeGiftCard(session *model.CheckoutSession) int64 {
	bare := *session
	bare.GiftCard = nil
	return s.fareFor(&bare).Total
}

func (s *checkoutService) releaseSeats(ctx context.Context, session *model.CheckoutSession) {
	s.releaseHeld(ctx, session, session.SelectedSeats)
}

func (s *checkoutService) releaseHeld(ctx context.Context, session *model.CheckoutSession, seats []string) {
	for _, seat := range seats {
		if err := s.seats.Release(ctx, session.Option, seat); err != nil {
			s.cfg.Log.Error("Failed to release seat hold",
				"session_id", session.ID, "seat", seat, "error", err)
		}
	}
}

func (s *checkoutService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishBookingEvent(ctx, bookingEvent(eventType, booking)); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"booking_id", booking.ID, "event_type", eventType, "error", err)
	}
}

// refundPercent applies the cancellation tiers against time to departure.
func refundPercent(now, departure time.Time, cfg *config.Config) int64 {
	until := departure.Sub(now)
	switch {
	case until >= cfg.FullRefundBefore:
		return 100
	case until >= cfg.HalfRefundBefore:
		return 50
	}
	return 0
}

func failureReason(failedStep string, err error) string {
	if apperrors.IsAppError(err) {
		return apperrors.AsAppError(err).Message
	}
	return failedStep + " failed"
}

func promoCode(session *model.CheckoutSession) string {
	if session.Promo == nil {
		return ""
	}
	return session.Promo.Code
}

func giftCardCode(session *model.CheckoutSession) string {
	if session.GiftCard == nil {
		return ""
	}
	return session.GiftCard.Code
}
