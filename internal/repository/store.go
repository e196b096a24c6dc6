package repository

import "github.com/Domenick1991/flightbooking/internal/database"

// Store holds the one repository instance per entity type that the process
// shares. Repositories keep no per-call state, so a Store is safe for
// concurrent use as long as its Provider is.
type Store struct {
	Airports AirportRepository
	Airlines AirlineRepository
	Flights  FlightRepository
}

func NewStore(db database.Provider) *Store {
	return &Store{
		Airports: NewAirportRepository(db),
		Airlines: NewAirlineRepository(db),
		Flights:  NewFlightRepository(db),
	}
}
