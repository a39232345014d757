// Package payments talks to the external payment gateway for non-wallet
// capture methods. Wallet payments never reach here; they debit the
// internal ledger directly.
package payments

import (
	"context"
	"fmt"
	"net/http"

	"tripdesk/pkg/client"
	"tripdesk/pkg/config"
	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/model"
)

type CaptureRequest struct {
	BookingID string              `json:"booking_id"`
	UserID    string              `json:"user_id"`
	Amount    int64               `json:"amount"`
	Method    model.PaymentMethod `json:"method"`
}

type captureResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Gateway captures payments. Capture must be idempotent per attemptKey on
// the gateway side.
type Gateway interface {
	Capture(ctx context.Context, req CaptureRequest, attemptKey string) error
}

type httpGateway struct {
	hc  *client.HttpClient
	cfg *config.Config
}

func NewHTTPGateway(cfg *config.Config) Gateway {
	return &httpGateway{
		hc:  client.NewHttpClient(cfg.PaymentGatewayURL, cfg.PaymentGatewayTimeout),
		cfg: cfg,
	}
}

func (g *httpGateway) Capture(ctx context.Context, req CaptureRequest, attemptKey string) error {
	resp, err := g.hc.POSTWithHeaders(ctx, "/v1/payments/capture", req, map[string]string{
		"Idempotency-Key": attemptKey,
	})
	if err != nil {
		return apperrors.PaymentDeclined("Payment gateway is unreachable", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		var body captureResponse
		message := "Payment was declined"
		if err := resp.DecodeJSON(&body); err == nil && body.Message != "" {
			message = body.Message
		}
		return apperrors.PaymentDeclined(message, nil)
	default:
		return apperrors.PaymentDeclined(
			fmt.Sprintf("Payment gateway returned status %d", resp.StatusCode), nil)
	}

	var body captureResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return apperrors.PaymentDeclined("Payment gateway returned an unreadable response", err)
	}
	if body.Status != "captured" {
		return apperrors.PaymentDeclined(fmt.Sprintf("Payment not captured: %s", body.Status), nil)
	}

	g.cfg.Log.Info("Payment captured",
		"booking_id", req.BookingID,
		"amount", req.Amount,
		"method", req.Method,
	)
	return nil
}
