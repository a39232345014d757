package service

import (
	"context"
	"fmt"

	"tripdesk/internal/notifications/sender"
	"tripdesk/pkg/config"
	"tripdesk/pkg/kafka"
)

// Notifier turns booking lifecycle events into passenger-facing email and
// SMS messages. Delivery is per-channel best effort; a failed channel is
// reported so the consumer can retry the event.
type Notifier struct {
	email sender.EmailSender
	sms   sender.SMSSender
	cfg   *config.Config
}

func NewNotifier(email sender.EmailSender, sms sender.SMSSender, cfg *config.Config) *Notifier {
	return &Notifier{email: email, sms: sms, cfg: cfg}
}

// HandleMessage is the Kafka consumer entrypoint for the booking events
// topic.
func (n *Notifier) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var event kafka.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}
	return n.Notify(ctx, event)
}

func (n *Notifier) Notify(ctx context.Context, event kafka.BookingEvent) error {
	subject, body, smsText, ok := n.render(event)
	if !ok {
		n.cfg.Log.Warn("Skipping unknown booking event", "event_type", event.Type, "booking_id", event.BookingID)
		return nil
	}

	var emailErr, smsErr error
	if event.ContactEmail != "" {
		emailErr = n.email.Send(ctx, event.ContactEmail, subject, body)
	}
	if event.ContactPhone != "" {
		smsErr = n.sms.Send(ctx, event.ContactPhone, smsText)
	}

	if emailErr != nil {
		return emailErr
	}
	if smsErr != nil {
		return smsErr
	}

	n.cfg.Log.Info("Booking notification delivered",
		"booking_id", event.BookingID,
		"event_type", event.Type,
		"email", event.ContactEmail != "",
		"sms", event.ContactPhone != "",
	)
	return nil
}

func (n *Notifier) render(event kafka.BookingEvent) (subject, body, smsText string, ok bool) {
	departure := event.DepartureTime.Format("02 Jan 2006 15:04")

	switch event.Type {
	case kafka.EventBookingConfirmed:
		subject = fmt.Sprintf("Booking confirmed: %s", event.RouteLabel)
		body = fmt.Sprintf(
			"Your %s booking for %s departing %s is confirmed.\nReference: %s\nAmount paid: ₹%d\n",
			event.Mode, event.RouteLabel, departure, event.ProviderRef, event.Total)
		smsText = fmt.Sprintf("Booking confirmed for %s on %s. Ref %s.", event.RouteLabel, departure, event.ProviderRef)
	case kafka.EventBookingFailed:
		subject = fmt.Sprintf("Booking failed: %s", event.RouteLabel)
		body = fmt.Sprintf(
			"We could not complete your %s booking for %s.\nReason: %s\nNo money was taken for this attempt.\n",
			event.Mode, event.RouteLabel, event.FailureReason)
		smsText = fmt.Sprintf("Booking for %s failed: %s", event.RouteLabel, event.FailureReason)
	case kafka.EventBookingRefunded:
		subject = fmt.Sprintf("Booking refunded: %s", event.RouteLabel)
		body = fmt.Sprintf(
			"Your %s booking for %s could not be confirmed with the provider.\n₹%d has been returned to your wallet.\n",
			event.Mode, event.RouteLabel, event.RefundAmount)
		smsText = fmt.Sprintf("Booking for %s refunded. ₹%d credited to your wallet.", event.RouteLabel, event.RefundAmount)
	case kafka.EventBookingCancelled:
		subject = fmt.Sprintf("Booking cancelled: %s", event.RouteLabel)
		body = fmt.Sprintf(
			"Your booking for %s departing %s has been cancelled.\nRefund to wallet: ₹%d\n",
			event.RouteLabel, departure, event.RefundAmount)
		smsText = fmt.Sprintf("Booking for %s cancelled. Refund ₹%d.", event.RouteLabel, event.RefundAmount)
	case kafka.EventBookingPendingApproval:
		subject = fmt.Sprintf("Booking awaiting approval: %s", event.RouteLabel)
		body = fmt.Sprintf(
			"Your corporate booking for %s departing %s needs manager approval before payment.\nWe will notify you once it is reviewed.\n",
			event.RouteLabel, departure)
		smsText = fmt.Sprintf("Booking for %s is awaiting manager approval.", event.RouteLabel)
	default:
		return "", "", "", false
	}

	return subject, body, smsText, true
}
