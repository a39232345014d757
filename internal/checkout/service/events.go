package service

import (
	"context"
	"time"

	"tripdesk/pkg/kafka"
	"tripdesk/pkg/middleware"
	"tripdesk/pkg/model"
)

// EventPublisher pushes booking lifecycle events to the message bus. The
// notifier consumes them for email and SMS delivery.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event kafka.BookingEvent) error
}

type kafkaEventPublisher struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaEventPublisher(producer *kafka.Producer, source string) EventPublisher {
	return &kafkaEventPublisher{producer: producer, source: source}
}

func (p *kafkaEventPublisher) PublishBookingEvent(ctx context.Context, event kafka.BookingEvent) error {
	msg := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(event.Type).
		WithCorrelationID(middleware.RequestIDFrom(ctx)).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}

// bookingEvent builds the notification payload from a booking. Contact
// details come from the lead passenger.
func bookingEvent(eventType string, booking *model.Booking) kafka.BookingEvent {
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		Status:        string(booking.Status),
		Mode:          string(booking.Option.Mode),
		RouteLabel:    booking.Option.RouteLabel,
		ProviderRef:   booking.ProviderRef,
		Total:         booking.Fare.Total,
		RefundAmount:  booking.RefundAmount,
		FailureReason: booking.FailureReason,
		DepartureTime: booking.Option.DepartureTime,
		OccurredAt:    time.Now().UTC(),
	}

	if len(booking.Passengers) > 0 {
		event.ContactEmail = booking.Passengers[0].Email
		event.ContactPhone = booking.Passengers[0].Phone
	}
	return event
}
