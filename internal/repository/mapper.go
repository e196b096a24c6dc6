package repository

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type airportRow struct {
	ID       int64  `db:"airport_id"`
	Name     string `db:"name"`
	City     string `db:"city"`
	Country  string `db:"country"`
	IataCode string `db:"iata_code"`
	IcaoCode string `db:"icao_code"`
	Timezone string `db:"timezone"`
}

func toAirport(r airportRow) domain.Airport {
	return domain.Airport{
		ID:       r.ID,
		Name:     r.Name,
		City:     r.City,
		Country:  r.Country,
		IataCode: r.IataCode,
		IcaoCode: r.IcaoCode,
		Timezone: r.Timezone,
	}
}

func scanAirport(row pgx.CollectableRow) (domain.Airport, error) {
	r, err := pgx.RowToStructByName[airportRow](row)
	if err != nil {
		return domain.Airport{}, err
	}
	return toAirport(r), nil
}

type airlineRow struct {
	ID       int64  `db:"airline_id"`
	Name     string `db:"name"`
	IataCode string `db:"iata_code"`
	IcaoCode string `db:"icao_code"`
	Country  string `db:"country"`
	Active   bool   `db:"is_active"`
}

func toAirline(r airlineRow) domain.Airline {
	return domain.Airline{
		ID:       r.ID,
		Name:     r.Name,
		IataCode: r.IataCode,
		IcaoCode: r.IcaoCode,
		Country:  r.Country,
		Active:   r.Active,
	}
}

func scanAirline(row pgx.CollectableRow) (domain.Airline, error) {
	r, err := pgx.RowToStructByName[airlineRow](row)
	if err != nil {
		return domain.Airline{}, err
	}
	return toAirline(r), nil
}

// flightRow is one row of the flights/airlines/airports join. Column aliases
// keep the three embedded entities apart.
type flightRow struct {
	ID            int64           `db:"flight_id"`
	FlightNumber  string          `db:"flight_number"`
	DepartureTime time.Time       `db:"departure_time"`
	ArrivalTime   time.Time       `db:"arrival_time"`
	BasePrice     decimal.Decimal `db:"base_price"`
	Status        string          `db:"status"`

	AirlineID      int64  `db:"airline_id"`
	AirlineName    string `db:"airline_name"`
	AirlineIata    string `db:"airline_iata"`
	AirlineIcao    string `db:"airline_icao"`
	AirlineCountry string `db:"airline_country"`
	AirlineActive  bool   `db:"airline_active"`

	DepID      int64  `db:"dep_id"`
	DepName    string `db:"dep_name"`
	DepCity    string `db:"dep_city"`
	DepCountry string `db:"dep_country"`
	DepIata    string `db:"dep_iata"`
	DepIcao    string `db:"dep_icao"`
	DepTz      string `db:"dep_tz"`

	ArrID      int64  `db:"arr_id"`
	ArrName    string `db:"arr_name"`
	ArrCity    string `db:"arr_city"`
	ArrCountry string `db:"arr_country"`
	ArrIata    string `db:"arr_iata"`
	ArrIcao    string `db:"arr_icao"`
	ArrTz      string `db:"arr_tz"`
}

func flightAirline(r flightRow) domain.Airline {
	return toAirline(airlineRow{
		ID:       r.AirlineID,
		Name:     r.AirlineName,
		IataCode: r.AirlineIata,
		IcaoCode: r.AirlineIcao,
		Country:  r.AirlineCountry,
		Active:   r.AirlineActive,
	})
}

func flightDepartureAirport(r flightRow) domain.Airport {
	return toAirport(airportRow{
		ID:       r.DepID,
		Name:     r.DepName,
		City:     r.DepCity,
		Country:  r.DepCountry,
		IataCode: r.DepIata,
		IcaoCode: r.DepIcao,
		Timezone: r.DepTz,
	})
}

func flightArrivalAirport(r flightRow) domain.Airport {
	return toAirport(airportRow{
		ID:       r.ArrID,
		Name:     r.ArrName,
		City:     r.ArrCity,
		Country:  r.ArrCountry,
		IataCode: r.ArrIata,
		IcaoCode: r.ArrIcao,
		Timezone: r.ArrTz,
	})
}

// toFlight fails on a status code this build does not know rather than
// guessing a default.
func toFlight(r flightRow) (domain.Flight, error) {
	status, err := domain.ParseFlightStatus(r.Status)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("flight %d: %w", r.ID, err)
	}

	return domain.Flight{
		ID:               r.ID,
		FlightNumber:     r.FlightNumber,
		Airline:          flightAirline(r),
		DepartureAirport: flightDepartureAirport(r),
		ArrivalAirport:   flightArrivalAirport(r),
		DepartureTime:    r.DepartureTime,
		ArrivalTime:      r.ArrivalTime,
		BasePrice:        r.BasePrice,
		Status:           status,
	}, nil
}

func scanFlight(row pgx.CollectableRow) (domain.Flight, error) {
	r, err := pgx.RowToStructByName[flightRow](row)
	if err != nil {
		return domain.Flight{}, err
	}
	return toFlight(r)
}
