package validator

import (
	"strings"
	"testing"
	"time"

	"tripdesk/pkg/logger"
	"tripdesk/pkg/model"
)

func testValidator() *CheckoutValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewCheckoutValidator(log)
}

func validSession() *model.CheckoutSession {
	return &model.CheckoutSession{
		UserID: "user-1",
		Option: model.TravelOption{
			Mode:          model.ModeFlight,
			ProviderCode:  "airgo",
			RouteLabel:    "DEL-BOM",
			DepartureTime: time.Now().Add(72 * time.Hour),
			BaseFare:      4500,
		},
		Passengers: []model.Passenger{
			{Name: "Asha Rao", Age: 34, Phone: "+919876543210", Email: "asha@example.com"},
		},
		BillingMode:   model.BillingPersonal,
		PaymentMethod: model.MethodUPI,
	}
}

func TestValidateSession(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name      string
		mutate    func(*model.CheckoutSession)
		wantError string
	}{
		{
			name:   "valid session",
			mutate: func(s *model.CheckoutSession) {},
		},
		{
			name:      "missing user",
			mutate:    func(s *model.CheckoutSession) { s.UserID = "" },
			wantError: "UserID is required",
		},
		{
			name:      "unknown mode",
			mutate:    func(s *model.CheckoutSession) { s.Option.Mode = "teleport" },
			wantError: "must be one of",
		},
		{
			name:      "no passengers",
			mutate:    func(s *model.CheckoutSession) { s.Passengers = nil },
			wantError: "Passengers is required",
		},
		{
			name: "too many passengers",
			mutate: func(s *model.CheckoutSession) {
				for i := 0; i < 9; i++ {
					s.Passengers = append(s.Passengers, model.Passenger{Name: "Extra Seat", Age: 30})
				}
			},
			wantError: "must be at most 9",
		},
		{
			name:      "bad passenger phone",
			mutate:    func(s *model.CheckoutSession) { s.Passengers[0].Phone = "98765" },
			wantError: "E.164",
		},
		{
			name:      "bad passenger email",
			mutate:    func(s *model.CheckoutSession) { s.Passengers[0].Email = "not-an-email" },
			wantError: "valid email",
		},
		{
			name:      "unknown payment method",
			mutate:    func(s *model.CheckoutSession) { s.PaymentMethod = "cheque" },
			wantError: "must be one of",
		},
		{
			name: "corporate wallet payment",
			mutate: func(s *model.CheckoutSession) {
				s.BillingMode = model.BillingCorporate
				s.PaymentMethod = model.MethodWallet
			},
			wantError: "corporate bookings cannot pay from a personal wallet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := validSession()
			tt.mutate(session)

			err := v.ValidateSession(session)
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("expected error to contain %q, got %q", tt.wantError, err.Error())
			}
		})
	}
}

func TestValidateSeats(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name       string
		seats      []string
		passengers int
		wantError  bool
	}{
		{"single seat", []string{"12A"}, 2, false},
		{"three digit row", []string{"104C"}, 1, false},
		{"empty selection", []string{}, 2, true},
		{"more seats than passengers", []string{"12A", "12B", "12C"}, 2, true},
		{"lowercase letter", []string{"12a"}, 2, true},
		{"missing letter", []string{"12"}, 2, true},
		{"four digit row", []string{"1234A"}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSeats(tt.seats, tt.passengers)
			if tt.wantError && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateSpecialRequests(t *testing.T) {
	v := testValidator()

	if err := v.ValidateSpecialRequests([]string{"wheelchair assistance"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := v.ValidateSpecialRequests(nil); err == nil {
		t.Error("expected an error for an empty request list")
	}

	long := strings.Repeat("x", 281)
	if err := v.ValidateSpecialRequests([]string{long}); err == nil {
		t.Error("expected an error for a request over 280 characters")
	}
}
