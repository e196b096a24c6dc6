package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// Sender tells passengers about flight status changes. Delivery is a log
// line for now; the message text is what a mail or push channel would send.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event domain.FlightStatusEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text, err := Message(event)
	if err != nil {
		return err
	}
	s.log.Info("passenger notification",
		zap.Stringer("event_id", event.EventID),
		zap.Int64("flight_id", event.FlightID),
		zap.String("status", string(event.Status)),
		zap.String("text", text),
	)
	return nil
}

func Message(event domain.FlightStatusEvent) (string, error) {
	n := event.FlightNumber
	switch event.Status {
	case domain.FlightStatusScheduled:
		return fmt.Sprintf("Flight %s is scheduled.", n), nil
	case domain.FlightStatusDelayed:
		return fmt.Sprintf("Flight %s is delayed. We apologise for the inconvenience.", n), nil
	case domain.FlightStatusCancelled:
		return fmt.Sprintf("Flight %s has been cancelled. Please contact the airline to rebook.", n), nil
	case domain.FlightStatusDeparted:
		return fmt.Sprintf("Flight %s has departed.", n), nil
	case domain.FlightStatusArrived:
		return fmt.Sprintf("Flight %s has arrived.", n), nil
	}
	return "", fmt.Errorf("flight %s: %w: %q", n, domain.ErrUnknownFlightStatus, event.Status)
}
