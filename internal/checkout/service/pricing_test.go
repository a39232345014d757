package service

import (
	"strings"
	"testing"

	"tripdesk/pkg/config"
	"tripdesk/pkg/model"
)

func pricingService() *checkoutService {
	return &checkoutService{
		cfg: &config.Config{
			CardFee:       99,
			NetbankingFee: 49,
		},
	}
}

func TestFareForArithmeticOrder(t *testing.T) {
	s := pricingService()

	// 4500 base + 150 seats + 350 meal = 5000 subtotal, 10% promo capped at
	// 200, no fee for UPI, then a 1000 gift card.
	session := &model.CheckoutSession{
		Option:        model.TravelOption{BaseFare: 4500},
		SeatCost:      150,
		MealCost:      350,
		PaymentMethod: model.MethodUPI,
		Promo:         &model.AppliedPromo{Code: "YATRA10", Discount: 200},
		GiftCard:      &model.AppliedGiftCard{Code: "GC1000", Amount: 1000},
	}

	fare := s.fareFor(session)

	if fare.Subtotal() != 5000 {
		t.Errorf("expected subtotal 5000, got %d", fare.Subtotal())
	}
	if fare.Discount != 200 {
		t.Errorf("expected discount 200, got %d", fare.Discount)
	}
	if fare.MethodFee != 0 {
		t.Errorf("expected no fee for UPI, got %d", fare.MethodFee)
	}
	if fare.GiftCardAmount != 1000 {
		t.Errorf("expected gift card amount 1000, got %d", fare.GiftCardAmount)
	}
	if fare.Total != 3800 {
		t.Errorf("expected total 3800, got %d", fare.Total)
	}
}

func TestFareForMethodFees(t *testing.T) {
	s := pricingService()

	tests := []struct {
		method   model.PaymentMethod
		expected int64
	}{
		{model.MethodUPI, 0},
		{model.MethodWallet, 0},
		{model.MethodCard, 99},
		{model.MethodNetbanking, 49},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			session := &model.CheckoutSession{
				Option:        model.TravelOption{BaseFare: 1000},
				PaymentMethod: tt.method,
			}
			fare := s.fareFor(session)
			if fare.MethodFee != tt.expected {
				t.Errorf("expected fee %d for %s, got %d", tt.expected, tt.method, fare.MethodFee)
			}
			if fare.Total != 1000+tt.expected {
				t.Errorf("expected total %d, got %d", 1000+tt.expected, fare.Total)
			}
		})
	}
}

func TestFareForDiscountFloorsAtZero(t *testing.T) {
	s := pricingService()

	session := &model.CheckoutSession{
		Option:        model.TravelOption{BaseFare: 100},
		PaymentMethod: model.MethodCard,
		Promo:         &model.AppliedPromo{Code: "BIG", Discount: 500},
	}

	fare := s.fareFor(session)

	// Discount floors the subtotal at zero before the method fee is added.
	if fare.Total != 99 {
		t.Errorf("expected total 99 (fee only), got %d", fare.Total)
	}
}

func TestFareForGiftCardNeverOverpays(t *testing.T) {
	s := pricingService()

	session := &model.CheckoutSession{
		Option:        model.TravelOption{BaseFare: 300},
		PaymentMethod: model.MethodUPI,
		GiftCard:      &model.AppliedGiftCard{Code: "GC", Amount: 5000},
	}

	fare := s.fareFor(session)

	if fare.GiftCardAmount != 300 {
		t.Errorf("expected gift card clamped to 300, got %d", fare.GiftCardAmount)
	}
	if fare.Total != 0 {
		t.Errorf("expected total 0, got %d", fare.Total)
	}
}

func TestEvaluatePromoPercentCapped(t *testing.T) {
	rule := &model.PromoRule{
		Code:        "YATRA10",
		Kind:        model.PromoPercent,
		Percent:     10,
		MaxDiscount: 200,
		MinSubtotal: 2000,
		Active:      true,
	}

	applied, err := evaluatePromo(rule, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied.Discount != 200 {
		t.Errorf("expected capped discount 200, got %d", applied.Discount)
	}
}

func TestEvaluatePromoFlat(t *testing.T) {
	rule := &model.PromoRule{
		Code:        "FLAT150",
		Kind:        model.PromoFlat,
		Amount:      150,
		MinSubtotal: 1000,
		Active:      true,
	}

	applied, err := evaluatePromo(rule, 1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied.Discount != 150 {
		t.Errorf("expected flat discount 150, got %d", applied.Discount)
	}
}

func TestEvaluatePromoBelowMinimum(t *testing.T) {
	rule := &model.PromoRule{
		Code:        "WELCOME50",
		Kind:        model.PromoFlat,
		Amount:      50,
		MinSubtotal: 500,
		Active:      true,
	}

	_, err := evaluatePromo(rule, 400)
	if err == nil {
		t.Fatal("expected an error for subtotal below minimum")
	}
	expected := "Add ₹100 more to use code WELCOME50"
	if got := err.Error(); !strings.Contains(got, expected) {
		t.Errorf("expected error to contain %q, got %q", expected, got)
	}
}

func TestEvaluatePromoInactive(t *testing.T) {
	rule := &model.PromoRule{
		Code:   "OLD",
		Kind:   model.PromoFlat,
		Amount: 100,
	}

	if _, err := evaluatePromo(rule, 5000); err == nil {
		t.Fatal("expected an error for an inactive promo")
	}
}

func TestGiftCardCap(t *testing.T) {
	tests := []struct {
		name     string
		balance  int64
		payable  int64
		expected int64
	}{
		{"balance below payable", 1000, 3800, 1000},
		{"balance above payable", 5000, 3800, 3800},
		{"equal", 2000, 2000, 2000},
		{"nothing payable", 1000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := giftCardCap(tt.balance, tt.payable); got != tt.expected {
				t.Errorf("giftCardCap(%d, %d) = %d, expected %d", tt.balance, tt.payable, got, tt.expected)
			}
		})
	}
}

func TestMealPrices(t *testing.T) {
	tests := []struct {
		code  string
		price int64
		ok    bool
	}{
		{"standard", 150, true},
		{"jain", 200, true},
		{"premium", 350, true},
		{"caviar", 0, false},
	}

	for _, tt := range tests {
		price, ok := mealPrice(tt.code)
		if ok != tt.ok || price != tt.price {
			t.Errorf("mealPrice(%q) = (%d, %v), expected (%d, %v)", tt.code, price, ok, tt.price, tt.ok)
		}
	}
}
