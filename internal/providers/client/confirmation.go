package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	providerrepo "tripdesk/internal/providers/repository"
	"tripdesk/pkg/client"
	"tripdesk/pkg/config"
	apperrors "tripdesk/pkg/errors"
	"tripdesk/pkg/model"
)

// ConfirmationClient asks the upstream inventory provider to confirm a
// reservation. Each call carries an attempt-scoped idempotency key so a
// retried confirmation cannot double-book.
type ConfirmationClient interface {
	Confirm(ctx context.Context, booking *model.Booking, attemptKey string) (string, error)
}

type confirmRequest struct {
	BookingID     string   `json:"booking_id"`
	Mode          string   `json:"mode"`
	RouteLabel    string   `json:"route_label"`
	DepartureTime string   `json:"departure_time"`
	Seats         []string `json:"seats,omitempty"`
	Passengers    int      `json:"passengers"`
}

type confirmResponse struct {
	ProviderRef string `json:"provider_ref"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

type httpConfirmationClient struct {
	providers providerrepo.ProviderRepository
	cfg       *config.Config
}

func NewHTTPConfirmationClient(providers providerrepo.ProviderRepository, cfg *config.Config) ConfirmationClient {
	return &httpConfirmationClient{providers: providers, cfg: cfg}
}

func (c *httpConfirmationClient) Confirm(ctx context.Context, booking *model.Booking, attemptKey string) (string, error) {
	provider, err := c.providers.FindByCode(ctx, booking.Option.ProviderCode)
	if err != nil {
		if errors.Is(err, providerrepo.ErrNotFound) {
			return "", apperrors.NotFoundWithID("Provider", booking.Option.ProviderCode)
		}
		return "", apperrors.Internal("Failed to resolve provider", err)
	}
	if !provider.Active {
		return "", apperrors.ProviderUnavailable(fmt.Sprintf("Provider %s is not accepting confirmations", provider.Code), nil)
	}

	hc := client.NewHttpClient(provider.BaseURL, c.cfg.ProviderTimeout)

	req := confirmRequest{
		BookingID:     booking.ID,
		Mode:          string(booking.Option.Mode),
		RouteLabel:    booking.Option.RouteLabel,
		DepartureTime: booking.Option.DepartureTime.Format("2006-01-02T15:04:05Z07:00"),
		Seats:         booking.SelectedSeats,
		Passengers:    len(booking.Passengers),
	}

	resp, err := hc.POSTWithHeaders(ctx, "/v1/reservations/confirm", req, map[string]string{
		"Idempotency-Key": attemptKey,
	})
	if err != nil {
		return "", apperrors.ProviderUnavailable("Provider confirmation call failed", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", apperrors.ProviderUnavailable(
			fmt.Sprintf("Provider %s rejected confirmation with status %d", provider.Code, resp.StatusCode), nil)
	}

	var body confirmResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return "", apperrors.ProviderUnavailable("Provider returned an unreadable confirmation", err)
	}
	if body.ProviderRef == "" {
		return "", apperrors.ProviderUnavailable("Provider confirmation did not include a reference", nil)
	}

	return body.ProviderRef, nil
}
