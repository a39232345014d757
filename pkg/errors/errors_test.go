package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("gateway connection refused")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodePaymentDeclined,
				Message: "payment capture failed",
				Err:     errors.New("card declined by issuer"),
			},
			expected: "PAYMENT_DECLINED: payment capture failed (caused by: card declined by issuer)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	unwrapped := errors.Unwrap(appErr)
	if unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestPaymentTaxonomyStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"payment declined", PaymentDeclined("capture failed", nil), CodePaymentDeclined, http.StatusPaymentRequired},
		{"provider unavailable", ProviderUnavailable("inventory gone", nil), CodeProviderUnavailable, http.StatusBadGateway},
		{"policy violation", PolicyViolation("fare cap exceeded", nil), CodePolicyViolation, http.StatusConflict},
		{"insufficient funds", InsufficientFunds("wallet balance too low"), CodeInsufficientFunds, http.StatusPaymentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := ProviderUnavailable("confirmation failed", nil)

	if !HasCode(err, CodeProviderUnavailable) {
		t.Errorf("expected HasCode to match %s", CodeProviderUnavailable)
	}
	if HasCode(err, CodePaymentDeclined) {
		t.Errorf("did not expect HasCode to match %s", CodePaymentDeclined)
	}
	if HasCode(errors.New("plain"), CodeInternal) {
		t.Errorf("plain errors must not match any code")
	}
}

func TestAsAppError(t *testing.T) {
	plain := errors.New("boom")
	converted := AsAppError(plain)

	if converted.Code != CodeInternal {
		t.Errorf("expected plain errors to convert to %s, got %s", CodeInternal, converted.Code)
	}
	if converted.Err != plain {
		t.Errorf("expected original error to be preserved")
	}

	app := NotFound("Wallet")
	if AsAppError(app) != app {
		t.Errorf("expected AppError to pass through unchanged")
	}
}
