package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

var (
	heathrow = domain.Airport{ID: 1, Name: "Heathrow", City: "London", Country: "UK", IataCode: "LHR", IcaoCode: "EGLL", Timezone: "Europe/London"}
	jfk      = domain.Airport{ID: 2, Name: "John F. Kennedy", City: "New York", Country: "USA", IataCode: "JFK", IcaoCode: "KJFK", Timezone: "America/New_York"}
	british  = domain.Airline{ID: 5, Name: "British Airways", IataCode: "BA", IcaoCode: "BAW", Country: "UK", Active: true}
)

var airportColumns = []string{"airport_id", "name", "city", "country", "iata_code", "icao_code", "timezone"}

func airportValues(a domain.Airport) []any {
	return []any{a.ID, a.Name, a.City, a.Country, a.IataCode, a.IcaoCode, a.Timezone}
}

var airlineColumns = []string{"airline_id", "name", "iata_code", "icao_code", "country", "is_active"}

func airlineValues(a domain.Airline) []any {
	return []any{a.ID, a.Name, a.IataCode, a.IcaoCode, a.Country, a.Active}
}

var flightColumns = []string{
	"flight_id", "flight_number", "departure_time", "arrival_time", "base_price", "status",
	"airline_id", "airline_name", "airline_iata", "airline_icao", "airline_country", "airline_active",
	"dep_id", "dep_name", "dep_city", "dep_country", "dep_iata", "dep_icao", "dep_tz",
	"arr_id", "arr_name", "arr_city", "arr_country", "arr_iata", "arr_icao", "arr_tz",
}

func flightValues(f domain.Flight, status string) []any {
	v := []any{f.ID, f.FlightNumber, f.DepartureTime, f.ArrivalTime, f.BasePrice.StringFixed(2), status}
	v = append(v, airlineValues(f.Airline)...)
	v = append(v, airportValues(f.DepartureAirport)...)
	return append(v, airportValues(f.ArrivalAirport)...)
}

func sampleFlight(id int64, dep time.Time) domain.Flight {
	return domain.Flight{
		ID:               id,
		FlightNumber:     "BA117",
		Airline:          british,
		DepartureAirport: heathrow,
		ArrivalAirport:   jfk,
		DepartureTime:    dep,
		ArrivalTime:      dep.Add(8 * time.Hour),
		BasePrice:        decimal.RequireFromString("499.90"),
		Status:           domain.FlightStatusScheduled,
	}
}

func sampleFlightRow() flightRow {
	dep := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return flightRow{
		ID: 42, FlightNumber: "BA117", DepartureTime: dep, ArrivalTime: dep.Add(8 * time.Hour),
		BasePrice: decimal.RequireFromString("499.90"), Status: "DELAYED",
		AirlineID: 5, AirlineName: "British Airways", AirlineIata: "BA", AirlineIcao: "BAW", AirlineCountry: "UK", AirlineActive: true,
		DepID: 1, DepName: "Heathrow", DepCity: "London", DepCountry: "UK", DepIata: "LHR", DepIcao: "EGLL", DepTz: "Europe/London",
		ArrID: 2, ArrName: "John F. Kennedy", ArrCity: "New York", ArrCountry: "USA", ArrIata: "JFK", ArrIcao: "KJFK", ArrTz: "America/New_York",
	}
}

func TestFlightSubEntityMappers(t *testing.T) {
	r := sampleFlightRow()

	assert.Equal(t, british, flightAirline(r))
	assert.Equal(t, heathrow, flightDepartureAirport(r))
	assert.Equal(t, jfk, flightArrivalAirport(r))
}

func TestToFlight(t *testing.T) {
	r := sampleFlightRow()

	f, err := toFlight(r)
	require.NoError(t, err)

	assert.Equal(t, int64(42), f.ID)
	assert.Equal(t, "BA117", f.FlightNumber)
	assert.Equal(t, domain.FlightStatusDelayed, f.Status)
	assert.Equal(t, british, f.Airline)
	assert.Equal(t, heathrow, f.DepartureAirport)
	assert.Equal(t, jfk, f.ArrivalAirport)
	assert.True(t, decimal.RequireFromString("499.9").Equal(f.BasePrice))
	assert.Equal(t, 8*time.Hour, f.Duration())
}

func TestToFlight_UnknownStatus(t *testing.T) {
	r := sampleFlightRow()
	r.Status = "2"

	_, err := toFlight(r)
	assert.True(t, errors.Is(err, domain.ErrUnknownFlightStatus))
	assert.ErrorContains(t, err, "flight 42")
}

func TestToAirport(t *testing.T) {
	r := airportRow{ID: 1, Name: "Heathrow", City: "London", Country: "UK", IataCode: "LHR", IcaoCode: "EGLL", Timezone: "Europe/London"}
	assert.Equal(t, heathrow, toAirport(r))
}
