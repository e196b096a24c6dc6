package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUnknownFlightStatus = errors.New("unknown flight status")

// FlightStatus is stored by its code, never by position, so members may be
// added or reordered without rewriting existing rows.
type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusDelayed   FlightStatus = "DELAYED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
	FlightStatusDeparted  FlightStatus = "DEPARTED"
	FlightStatusArrived   FlightStatus = "ARRIVED"
)

func FlightStatuses() []FlightStatus {
	return []FlightStatus{
		FlightStatusScheduled,
		FlightStatusDelayed,
		FlightStatusCancelled,
		FlightStatusDeparted,
		FlightStatusArrived,
	}
}

func (s FlightStatus) Valid() bool {
	switch s {
	case FlightStatusScheduled, FlightStatusDelayed, FlightStatusCancelled, FlightStatusDeparted, FlightStatusArrived:
		return true
	}
	return false
}

func ParseFlightStatus(code string) (FlightStatus, error) {
	s := FlightStatus(code)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFlightStatus, code)
	}
	return s, nil
}

// Flight always carries its airline and both airports fully populated when
// it comes back from storage.
type Flight struct {
	ID               int64           `json:"id"`
	FlightNumber     string          `json:"flight_number"`
	Airline          Airline         `json:"airline"`
	DepartureAirport Airport         `json:"departure_airport"`
	ArrivalAirport   Airport         `json:"arrival_airport"`
	DepartureTime    time.Time       `json:"departure_time"`
	ArrivalTime      time.Time       `json:"arrival_time"`
	BasePrice        decimal.Decimal `json:"base_price"`
	Status           FlightStatus    `json:"status"`
}

func (f Flight) Duration() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}
