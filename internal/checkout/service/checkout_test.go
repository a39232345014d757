package service

import (
	"context"
	"errors"
	"testing"
	"time"

	checkouterrors "tripdesk/internal/checkout/errors"
	checkoutvalidator "tripdesk/internal/checkout/validator"
	"tripdesk/internal/payments"
	policyservice "tripdesk/internal/policy/service"
	"tripdesk/pkg/config"
	mongotx "tripdesk/pkg/db/mongo"
	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/kafka"
	"tripdesk/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// Mock repositories and collaborators for testing

type mockSessionRepository struct {
	sessions map[string]*model.CheckoutSession
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*model.CheckoutSession)}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *model.CheckoutSession) error {
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*model.CheckoutSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *session
	return &copied, nil
}

func (m *mockSessionRepository) Update(ctx context.Context, session *model.CheckoutSession) error {
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockSessionRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	var sc mongo.SessionContext
	return fn(sc)
}

type mockBookingRepository struct {
	bookings map[string]*model.Booking
}

func newMockBookingRepository() *mockBookingRepository {
	return &mockBookingRepository{bookings: make(map[string]*model.Booking)}
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	copied := *booking
	m.bookings[booking.ID] = &copied
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *booking
	return &copied, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	copied := *booking
	m.bookings[booking.ID] = &copied
	return nil
}

func (m *mockBookingRepository) FindTerminalByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.UserID == userID && b.Status.Terminal() {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) CountTerminalByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, b := range m.bookings {
		if b.UserID == userID && b.Status.Terminal() {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	var sc mongo.SessionContext
	return fn(sc)
}

type mockSeatHoldRepository struct {
	held        map[string]bool
	acquireFunc func(seat string) (bool, error)
	released    []string
}

func newMockSeatHoldRepository() *mockSeatHoldRepository {
	return &mockSeatHoldRepository{held: make(map[string]bool)}
}

func (m *mockSeatHoldRepository) Acquire(ctx context.Context, option model.TravelOption, seat string, sessionID string, ttl time.Duration) (bool, error) {
	if m.acquireFunc != nil {
		ok, err := m.acquireFunc(seat)
		if ok && err == nil {
			m.held[seat] = true
		}
		return ok, err
	}
	m.held[seat] = true
	return true, nil
}

func (m *mockSeatHoldRepository) Release(ctx context.Context, option model.TravelOption, seat string) error {
	delete(m.held, seat)
	m.released = append(m.released, seat)
	return nil
}

type mockPromoRepository struct {
	rules map[string]*model.PromoRule
}

func (m *mockPromoRepository) FindByCode(ctx context.Context, code string) (*model.PromoRule, error) {
	if rule, ok := m.rules[code]; ok {
		return rule, nil
	}
	return nil, errors.New("promo rule not found")
}

type mockWalletService struct {
	debits  []int64
	credits []int64

	debitFunc func(amount int64) error
}

func (m *mockWalletService) Balance(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (m *mockWalletService) Debit(ctx context.Context, userID string, amount int64, bookingID, reason string) error {
	if m.debitFunc != nil {
		if err := m.debitFunc(amount); err != nil {
			return err
		}
	}
	m.debits = append(m.debits, amount)
	return nil
}

func (m *mockWalletService) Credit(ctx context.Context, userID string, amount int64, bookingID, reason string) error {
	m.credits = append(m.credits, amount)
	return nil
}

func (m *mockWalletService) Entries(ctx context.Context, userID string, limit int, offset int64) ([]*model.WalletEntry, error) {
	return nil, nil
}

func (m *mockWalletService) net() int64 {
	var net int64
	for _, d := range m.debits {
		net -= d
	}
	for _, c := range m.credits {
		net += c
	}
	return net
}

type mockGiftCardService struct {
	card     *model.GiftCard
	redeemed int64
	restored int64

	redeemErr error
}

func (m *mockGiftCardService) Validate(ctx context.Context, code string) (*model.GiftCard, error) {
	if m.card == nil {
		return nil, apperrors.NotFound("Gift card")
	}
	return m.card, nil
}

func (m *mockGiftCardService) Redeem(ctx context.Context, code string, amount int64) error {
	if m.redeemErr != nil {
		return m.redeemErr
	}
	m.redeemed += amount
	return nil
}

func (m *mockGiftCardService) Restore(ctx context.Context, code string, amount int64) error {
	m.restored += amount
	return nil
}

type mockPolicyService struct {
	result    policyservice.ComplianceResult
	submitted *model.ApprovalRequest
}

func (m *mockPolicyService) CheckCompliance(total int64, mode model.TravelMode, departure time.Time) policyservice.ComplianceResult {
	return m.result
}

func (m *mockPolicyService) SubmitForApproval(ctx context.Context, booking *model.Booking, violations []model.PolicyViolation) (*model.ApprovalRequest, error) {
	m.submitted = &model.ApprovalRequest{BookingID: booking.ID, Violations: violations}
	return m.submitted, nil
}

func (m *mockPolicyService) PendingApprovals(ctx context.Context, limit int, offset int64) ([]*model.ApprovalRequest, int64, error) {
	return nil, 0, nil
}

type mockGateway struct {
	captured   []payments.CaptureRequest
	captureErr error
}

func (m *mockGateway) Capture(ctx context.Context, req payments.CaptureRequest, attemptKey string) error {
	if m.captureErr != nil {
		return m.captureErr
	}
	m.captured = append(m.captured, req)
	return nil
}

type mockConfirmationClient struct {
	ref        string
	confirmErr error
	attempts   []string
}

func (m *mockConfirmationClient) Confirm(ctx context.Context, booking *model.Booking, attemptKey string) (string, error) {
	m.attempts = append(m.attempts, attemptKey)
	if m.confirmErr != nil {
		return "", m.confirmErr
	}
	return m.ref, nil
}

type mockEventPublisher struct {
	events []kafka.BookingEvent
}

func (m *mockEventPublisher) PublishBookingEvent(ctx context.Context, event kafka.BookingEvent) error {
	m.events = append(m.events, event)
	return nil
}

type testFixture struct {
	service   *checkoutService
	sessions  *mockSessionRepository
	bookings  *mockBookingRepository
	seats     *mockSeatHoldRepository
	promos    *mockPromoRepository
	wallet    *mockWalletService
	giftCards *mockGiftCardService
	policy    *mockPolicyService
	gateway   *mockGateway
	provider  *mockConfirmationClient
	events    *mockEventPublisher
}

func newFixture() *testFixture {
	cfg := &config.Config{
		Log:               testLogger(),
		SeatFee:           75,
		SpecialRequestFee: 50,
		CardFee:           99,
		NetbankingFee:     49,
		SeatHoldTTL:       10 * time.Minute,
		CorporateFareCap:  15000,
		FullRefundBefore:  24 * time.Hour,
		HalfRefundBefore:  2 * time.Hour,
	}

	f := &testFixture{
		sessions:  newMockSessionRepository(),
		bookings:  newMockBookingRepository(),
		seats:     newMockSeatHoldRepository(),
		promos:    &mockPromoRepository{rules: map[string]*model.PromoRule{}},
		wallet:    &mockWalletService{},
		giftCards: &mockGiftCardService{},
		policy:    &mockPolicyService{},
		gateway:   &mockGateway{},
		provider:  &mockConfirmationClient{ref: "PNR-123"},
		events:    &mockEventPublisher{},
	}

	f.service = &checkoutService{
		cfg:       cfg,
		sessions:  f.sessions,
		bookings:  f.bookings,
		seats:     f.seats,
		promos:    f.promos,
		wallet:    f.wallet,
		giftCards: f.giftCards,
		policy:    f.policy,
		gateway:   f.gateway,
		provider:  f.provider,
		events:    f.events,
		validator: checkoutvalidator.NewCheckoutValidator(cfg.Log),
		now:       time.Now,
	}
	return f
}

func flightSession(step model.CheckoutStep) *model.CheckoutSession {
	return &model.CheckoutSession{
		ID:     "sess-1",
		UserID: "user-1",
		Option: model.TravelOption{
			Mode:          model.ModeFlight,
			ProviderCode:  "airgo",
			RouteLabel:    "DEL-BOM",
			DepartureTime: time.Now().Add(72 * time.Hour),
			BaseFare:      4500,
		},
		Passengers: []model.Passenger{
			{Name: "Asha Rao", Age: 34, Email: "asha@example.com"},
			{Name: "Vikram Rao", Age: 36},
		},
		BillingMode:   model.BillingPersonal,
		PaymentMethod: model.MethodUPI,
		CurrentStep:   step,
	}
}

func TestStartOpensSessionAtReview(t *testing.T) {
	f := newFixture()

	session, err := f.service.Start(context.Background(), flightSession(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.CurrentStep != model.StepReview {
		t.Errorf("expected REVIEW, got %s", session.CurrentStep)
	}
	if session.ID == "" {
		t.Error("expected a generated session ID")
	}
	if _, ok := f.sessions.sessions[session.ID]; !ok {
		t.Error("expected the session to be persisted")
	}
}

func TestStartRejectsInvalidSession(t *testing.T) {
	f := newFixture()

	session := flightSession("")
	session.Passengers = nil

	if _, err := f.service.Start(context.Background(), session); err == nil {
		t.Fatal("expected a validation error for missing passengers")
	}
}

func TestConfirmSeatsHoldsAndPrices(t *testing.T) {
	f := newFixture()
	f.sessions.Create(context.Background(), flightSession(model.StepSeatSelection))

	session, err := f.service.ConfirmStep(context.Background(), "sess-1", "user-1",
		model.StepSeatSelection, StepPayload{Seats: []string{" 12a ", "12b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.SeatCost != 150 {
		t.Errorf("expected seat cost 150 for two seats, got %d", session.SeatCost)
	}
	if len(session.SelectedSeats) != 2 || session.SelectedSeats[0] != "12A" {
		t.Errorf("expected normalized seats [12A 12B], got %v", session.SelectedSeats)
	}
	if !f.seats.held["12A"] || !f.seats.held["12B"] {
		t.Error("expected both seats to be held")
	}
	if session.CurrentStep != model.StepMealSelection {
		t.Errorf("expected MEAL_SELECTION next, got %s", session.CurrentStep)
	}
}

func TestConfirmSeatsConflictReleasesPartialHolds(t *testing.T) {
	f := newFixture()
	f.sessions.Create(context.Background(), flightSession(model.StepSeatSelection))
	f.seats.acquireFunc = func(seat string) (bool, error) {
		return seat != "12B", nil
	}

	_, err := f.service.ConfirmStep(context.Background(), "sess-1", "user-1",
		model.StepSeatSelection, StepPayload{Seats: []string{"12A", "12B"}})
	if err == nil {
		t.Fatal("expected a conflict error")
	}
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("expected CONFLICT, got %v", err)
	}
	if !errors.Is(err, checkouterrors.ErrSeatUnavailable) {
		t.Errorf("expected the error to wrap ErrSeatUnavailable, got %v", err)
	}
	if len(f.seats.released) != 1 || f.seats.released[0] != "12A" {
		t.Errorf("expected the acquired seat 12A to be released, got %v", f.seats.released)
	}
}

func TestConfirmStepRejectsWrongStep(t *testing.T) {
	f := newFixture()
	f.sessions.Create(context.Background(), flightSession(model.StepReview))

	_, err := f.service.ConfirmStep(context.Background(), "sess-1", "user-1",
		model.StepMealSelection, StepPayload{Meals: []string{"jain"}})
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("expected CONFLICT for out-of-order confirm, got %v", err)
	}
}

func TestSkipNonSkippableStep(t *testing.T) {
	f := newFixture()
	f.sessions.Create(context.Background(), flightSession(model.StepReview))

	_, err := f.service.SkipStep(context.Background(), "sess-1", "user-1", model.StepReview)
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for skipping review, got %v", err)
	}
}

func TestArrivalAtPaymentFreezesBooking(t *testing.T) {
	f := newFixture()
	session := flightSession(model.StepSpecialRequests)
	session.SeatCost = 150
	session.MealCost = 350
	f.sessions.Create(context.Background(), session)

	updated, err := f.service.SkipStep(context.Background(), "sess-1", "user-1", model.StepSpecialRequests)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CurrentStep != model.StepPayment {
		t.Fatalf("expected PAYMENT, got %s", updated.CurrentStep)
	}
	if updated.BookingID == "" {
		t.Fatal("expected a booking to be created on arrival at payment")
	}

	booking := f.bookings.bookings[updated.BookingID]
	if booking == nil {
		t.Fatal("expected the booking to be persisted")
	}
	if booking.Status != model.BookingInitiated {
		t.Errorf("expected INITIATED, got %s", booking.Status)
	}
	if booking.Fare.Total != 5000 {
		t.Errorf("expected frozen total 5000, got %d", booking.Fare.Total)
	}
}

func TestApplyPromoOnSession(t *testing.T) {
	f := newFixture()
	session := flightSession(model.StepPayment)
	session.SeatCost = 150
	session.MealCost = 350
	f.sessions.Create(context.Background(), session)
	f.promos.rules["YATRA10"] = &model.PromoRule{
		Code: "YATRA10", Kind: model.PromoPercent, Percent: 10, MaxDiscount: 200, MinSubtotal: 2000, Active: true,
	}

	updated, err := f.service.ApplyPromo(context.Background(), "sess-1", "user-1", "yatra10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Promo == nil || updated.Promo.Discount != 200 {
		t.Fatalf("expected applied discount 200, got %+v", updated.Promo)
	}
}

func TestApplyGiftCardCapsAtPayable(t *testing.T) {
	f := newFixture()
	session := flightSession(model.StepPayment)
	session.SeatCost = 150
	session.MealCost = 350
	f.sessions.Create(context.Background(), session)
	f.giftCards.card = &model.GiftCard{Code: "GC9999", Balance: 9999}

	updated, err := f.service.ApplyGiftCard(context.Background(), "sess-1", "user-1", "GC9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.GiftCard == nil || updated.GiftCard.Amount != 5000 {
		t.Fatalf("expected gift card capped at payable 5000, got %+v", updated.GiftCard)
	}
}

func paymentReadyFixture(t *testing.T, method model.PaymentMethod) (*testFixture, *model.CheckoutSession) {
	t.Helper()

	f := newFixture()
	session := flightSession(model.StepPayment)
	session.PaymentMethod = method
	session.SeatCost = 150
	session.MealCost = 350
	session.SelectedSeats = []string{"12A", "12B"}
	session.BookingID = "book-1"
	f.sessions.Create(context.Background(), session)

	f.bookings.Create(context.Background(), &model.Booking{
		ID:            "book-1",
		SessionID:     session.ID,
		UserID:        session.UserID,
		Option:        session.Option,
		Passengers:    session.Passengers,
		SelectedSeats: session.SelectedSeats,
		PaymentMethod: method,
		BillingMode:   session.BillingMode,
		Status:        model.BookingInitiated,
	})
	return f, session
}

func TestPayConfirmsBooking(t *testing.T) {
	f, _ := paymentReadyFixture(t, model.MethodUPI)

	booking, err := f.service.Pay(context.Background(), "sess-1", "user-1", "attempt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.BookingConfirmed {
		t.Errorf("expected CONFIRMED, got %s", booking.Status)
	}
	if booking.ProviderRef != "PNR-123" {
		t.Errorf("expected provider ref PNR-123, got %s", booking.ProviderRef)
	}
	if len(f.gateway.captured) != 1 || f.gateway.captured[0].Amount != 5000 {
		t.Errorf("expected one gateway capture of 5000, got %+v", f.gateway.captured)
	}
	if len(f.provider.attempts) != 1 || f.provider.attempts[0] != "attempt-1" {
		t.Errorf("expected the attempt key forwarded to the provider, got %v", f.provider.attempts)
	}
	if len(f.wallet.debits) != 0 || len(f.wallet.credits) != 0 {
		t.Errorf("expected the wallet untouched for a UPI payment, got debits %v credits %v",
			f.wallet.debits, f.wallet.credits)
	}

	stored := f.sessions.sessions["sess-1"]
	if stored.CurrentStep != model.StepConfirmed {
		t.Errorf("expected session CONFIRMED, got %s", stored.CurrentStep)
	}
	if len(f.events.events) != 1 || f.events.events[0].Type != kafka.EventBookingConfirmed {
		t.Errorf("expected a confirmed event, got %+v", f.events.events)
	}
}

func TestPayReEvaluatesPromoAgainstFinalSubtotal(t *testing.T) {
	f, session := paymentReadyFixture(t, model.MethodUPI)
	// Discount committed when the subtotal was just the base fare.
	session.Promo = &model.AppliedPromo{Code: "YATRA10", Discount: 450}
	f.sessions.Update(context.Background(), session)
	f.promos.rules["YATRA10"] = &model.PromoRule{
		Code: "YATRA10", Kind: model.PromoPercent, Percent: 10, MaxDiscount: 600, MinSubtotal: 2000, Active: true,
	}

	booking, err := f.service.Pay(context.Background(), "sess-1", "user-1", "attempt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10% of the final 5000 subtotal, not of the 4500 at application time.
	if booking.Fare.Discount != 500 {
		t.Errorf("expected re-evaluated discount 500, got %d", booking.Fare.Discount)
	}
	if booking.Fare.Total != 4500 {
		t.Errorf("expected total 4500, got %d", booking.Fare.Total)
	}
}

func TestPayGiftCardCoveredProviderFailure(t *testing.T) {
	f, session := paymentReadyFixture(t, model.MethodUPI)
	session.GiftCard = &model.AppliedGiftCard{Code: "GC5000", Amount: 5000}
	f.sessions.Update(context.Background(), session)
	f.provider.confirmErr = apperrors.ProviderUnavailable("inventory sold out", nil)

	booking, err := f.service.Pay(context.Background(), "sess-1", "user-1", "attempt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Nothing was captured, so the restored redemption ends the booking
	// FAILED rather than REFUNDED.
	if booking.Status != model.BookingFailed {
		t.Errorf("expected FAILED, got %s", booking.Status)
	}
	if f.giftCards.redeemed != 5000 || f.giftCards.restored != 5000 {
		t.Errorf("expected the full redemption restored, got redeemed %d restored %d",
			f.giftCards.redeemed, f.giftCards.restored)
	}
	if len(f.gateway.captured) != 0 {
		t.Error("expected no capture for a zero payable total")
	}
	if len(f.wallet.debits) != 0 || len(f.wallet.credits) != 0 {
		t.Errorf("expected no wallet movement, got debits %v credits %v",
			f.wallet.debits, f.wallet.credits)
	}
}

func TestPayWalletProviderFailureRefundsNetZero(t *testing.T) {
	f, _ := paymentReadyFixture(t, model.MethodWallet)
	f.provider.confirmErr = apperrors.ProviderUnavailable("provider timeout", nil)

	booking, err := f.service.Pay(context.Background(), "sess-1", "user-1", "attempt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.BookingRefunded {
		t.Errorf("expected REFUNDED, got %s", booking.Status)
	}
	if booking.RefundAmount != 5000 {
		t.Errorf("expected refund amount 5000, got %d", booking.RefundAmount)
	}
	if f.wallet.net() != 0 {
		t.Errorf("expected wallet net zero after compensation, got %d", f.wallet.net())
	}
	if len(f.seats.released) != 2 {
		t.Errorf("expected both seat holds released, got %v", f.seats.released)
	}
	if len(f.events.events) != 1 || f.events.events[0].Type != kafka.EventBookingRefunded {
		t.Errorf("expected a refunded event, got %+v", f.events.events)
	}
}

func TestPayCaptureFailureRestoresGiftCard(t *testing.T) {
	f, session := paymentReadyFixture(t, model.MethodCard)
	session.GiftCard = &model.AppliedGiftCard{Code: "GC1000", Amount: 1000}
	f.sessions.Update(context.Background(), session)
	f.gateway.captureErr = apperrors.PaymentDeclined("card declined", nil)

	booking, err := f.service.Pay(context.Background(), "sess-1", "user-1", "attempt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.BookingFailed {
		t.Errorf("expected FAILED, got %s", booking.Status)
	}
	if f.giftCards.redeemed != 1000 {
		t.Errorf("expected 1000 redeemed before the capture attempt, got %d", f.giftCards.redeemed)
	}
	if f.giftCards.restored != 1000 {
		t.Errorf("expected the redemption restored, got %d", f.giftCards.restored)
	}
	if f.wallet.net() != 0 {
		t.Errorf("expected no wallet movement, got net %d", f.wallet.net())
	}
	if booking.FailureReason == "" {
		t.Error("expected a failure reason")
	}
}

func TestPayCorporateOverCapParksForApproval(t *testing.T) {
	f, session := paymentReadyFixture(t, model.MethodCard)
	session.BillingMode = model.BillingCorporate
	f.sessions.Update(context.Background(), session)
	f.policy.result = policyservice.ComplianceResult{
		Violations:       []model.PolicyViolation{{Rule: "fare_cap", Message: "over cap"}},
		RequiresApproval: true,
	}

	booking, err := f.service.Pay(context.Background(), "sess-1", "user-1", "attempt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.BookingPendingApproval {
		t.Errorf("expected PENDING_APPROVAL, got %s", booking.Status)
	}
	if f.policy.submitted == nil {
		t.Fatal("expected an approval request to be submitted")
	}
	if len(f.gateway.captured) != 0 {
		t.Error("expected no capture for a parked booking")
	}
	if f.sessions.sessions["sess-1"].CurrentStep != model.StepPendingApproval {
		t.Errorf("expected session PENDING_APPROVAL, got %s", f.sessions.sessions["sess-1"].CurrentStep)
	}
	if len(f.events.events) != 1 || f.events.events[0].Type != kafka.EventBookingPendingApproval {
		t.Errorf("expected a pending-approval event, got %+v", f.events.events)
	}
}

func TestCancelNonConfirmedIsConflict(t *testing.T) {
	f := newFixture()
	f.bookings.Create(context.Background(), &model.Booking{
		ID: "book-1", UserID: "user-1", Status: model.BookingFailed,
	})

	_, err := f.service.Cancel(context.Background(), "book-1", "user-1")
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("expected CONFLICT for cancelling a failed booking, got %v", err)
	}
}

func TestCancelRefundTiers(t *testing.T) {
	tests := []struct {
		name           string
		untilDeparture time.Duration
		expectedRefund int64
	}{
		{"full refund", 48 * time.Hour, 5000},
		{"half refund", 5 * time.Hour, 2500},
		{"no refund", 30 * time.Minute, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.bookings.Create(context.Background(), &model.Booking{
				ID:     "book-1",
				UserID: "user-1",
				Status: model.BookingConfirmed,
				Option: model.TravelOption{DepartureTime: time.Now().Add(tt.untilDeparture)},
				Fare:   model.FareBreakdown{Total: 5000},
			})

			booking, err := f.service.Cancel(context.Background(), "book-1", "user-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if booking.Status != model.BookingCancelled {
				t.Errorf("expected CANCELLED, got %s", booking.Status)
			}
			if booking.RefundAmount != tt.expectedRefund {
				t.Errorf("expected refund %d, got %d", tt.expectedRefund, booking.RefundAmount)
			}

			var credited int64
			for _, c := range f.wallet.credits {
				credited += c
			}
			if credited != tt.expectedRefund {
				t.Errorf("expected wallet credit %d, got %d", tt.expectedRefund, credited)
			}
		})
	}
}

func TestLoadSessionHidesOtherUsers(t *testing.T) {
	f := newFixture()
	f.sessions.Create(context.Background(), flightSession(model.StepReview))

	_, err := f.service.Get(context.Background(), "sess-1", "someone-else")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND for another user's session, got %v", err)
	}
}
