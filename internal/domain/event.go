package domain

import (
	"time"

	"github.com/google/uuid"
)

// FlightStatusEvent is published after a status change affected a stored flight.
type FlightStatusEvent struct {
	EventID      uuid.UUID    `json:"event_id"`
	FlightID     int64        `json:"flight_id"`
	FlightNumber string       `json:"flight_number"`
	Status       FlightStatus `json:"status"`
	OccurredAt   time.Time    `json:"occurred_at"`
}

func NewFlightStatusEvent(f Flight, status FlightStatus, at time.Time) FlightStatusEvent {
	return FlightStatusEvent{
		EventID:      uuid.New(),
		FlightID:     f.ID,
		FlightNumber: f.FlightNumber,
		Status:       status,
		OccurredAt:   at.UTC(),
	}
}
