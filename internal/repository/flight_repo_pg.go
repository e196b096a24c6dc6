package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Domenick1991/flightbooking/internal/database"
	"github.com/Domenick1991/flightbooking/internal/domain"
)

type FlightRepository interface {
	FindAll(ctx context.Context) ([]domain.Flight, error)
	FindByID(ctx context.Context, id int64) (domain.Flight, bool, error)
	FindByCriteria(ctx context.Context, criteria FlightCriteria) ([]domain.Flight, error)
	Create(ctx context.Context, flight domain.Flight) (domain.Flight, error)
	Update(ctx context.Context, flight domain.Flight) error
	UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// FlightCriteria filters a flight search. Nil fields impose no constraint.
// Date matches flights departing on that year-month-day in UTC; the zone of
// Date itself is ignored.
type FlightCriteria struct {
	DepartureAirportID *int64
	ArrivalAirportID   *int64
	Date               *time.Time
	Status             *domain.FlightStatus
}

func (c FlightCriteria) String() string {
	s := ""
	if c.DepartureAirportID != nil {
		s += fmt.Sprintf(" from=%d", *c.DepartureAirportID)
	}
	if c.ArrivalAirportID != nil {
		s += fmt.Sprintf(" to=%d", *c.ArrivalAirportID)
	}
	if c.Date != nil {
		s += " date=" + c.Date.Format(time.DateOnly)
	}
	if c.Status != nil {
		s += " status=" + string(*c.Status)
	}
	if s == "" {
		return ""
	}
	return s[1:]
}

const (
	selectFlightsBase = `SELECT
		f.flight_id, f.flight_number, f.departure_time, f.arrival_time, f.base_price, f.status,
		al.airline_id, al.name AS airline_name, al.iata_code AS airline_iata,
		al.icao_code AS airline_icao, al.country AS airline_country, al.is_active AS airline_active,
		dep.airport_id AS dep_id, dep.name AS dep_name, dep.city AS dep_city,
		dep.country AS dep_country, dep.iata_code AS dep_iata, dep.icao_code AS dep_icao, dep.timezone AS dep_tz,
		arr.airport_id AS arr_id, arr.name AS arr_name, arr.city AS arr_city,
		arr.country AS arr_country, arr.iata_code AS arr_iata, arr.icao_code AS arr_icao, arr.timezone AS arr_tz
	FROM flights f
	JOIN airlines al ON al.airline_id = f.airline_id
	JOIN airports dep ON dep.airport_id = f.departure_airport_id
	JOIN airports arr ON arr.airport_id = f.arrival_airport_id`

	// Callers paginate on this ordering; do not change it.
	flightsOrder = `f.departure_time ASC, f.flight_id ASC`

	selectFlightsSQL    = selectFlightsBase + ` ORDER BY ` + flightsOrder
	selectFlightByIDSQL = selectFlightsBase + ` WHERE f.flight_id = $1`
	insertFlightSQL     = `INSERT INTO flights (
			flight_number, airline_id, departure_airport_id, arrival_airport_id,
			departure_time, arrival_time, base_price, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING flight_id`
	updateFlightSQL = `UPDATE flights SET
			flight_number = $1,
			airline_id = $2,
			departure_airport_id = $3,
			arrival_airport_id = $4,
			departure_time = $5,
			arrival_time = $6,
			base_price = $7,
			status = $8
		WHERE flight_id = $9`
	updateFlightStatusSQL = `UPDATE flights SET status = $1 WHERE flight_id = $2`
	deleteFlightSQL       = `DELETE FROM flights WHERE flight_id = $1`
)

type PGFlightRepository struct {
	db database.Provider
}

func NewFlightRepository(db database.Provider) *PGFlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) FindAll(ctx context.Context) ([]domain.Flight, error) {
	return queryAll(ctx, r.db, "flight.FindAll", "", scanFlight, selectFlightsSQL)
}

func (r *PGFlightRepository) FindByID(ctx context.Context, id int64) (domain.Flight, bool, error) {
	const op = "flight.FindByID"
	if err := requireID(op, id, "flight"); err != nil {
		return domain.Flight{}, false, err
	}
	return queryOne(ctx, r.db, op, idKey(id), scanFlight, selectFlightByIDSQL, id)
}

func (r *PGFlightRepository) FindByCriteria(ctx context.Context, criteria FlightCriteria) ([]domain.Flight, error) {
	const op = "flight.FindByCriteria"
	key := criteria.String()

	b, err := flightCriteriaQuery(op, key, criteria)
	if err != nil {
		return nil, err
	}
	sql, args := b.Build()
	return queryAll(ctx, r.db, op, key, scanFlight, sql, args...)
}

// flightCriteriaQuery adds one predicate per present criterion, always in the
// same order: departure airport, arrival airport, date, status.
func flightCriteriaQuery(op, key string, c FlightCriteria) (*selectBuilder, error) {
	b := newSelect(selectFlightsBase).OrderBy(flightsOrder)

	if c.DepartureAirportID != nil {
		if *c.DepartureAirportID <= 0 {
			return nil, invalidArgument(op, key, "departure airport id must be positive")
		}
		b.Where("f.departure_airport_id", "=", *c.DepartureAirportID)
	}
	if c.ArrivalAirportID != nil {
		if *c.ArrivalAirportID <= 0 {
			return nil, invalidArgument(op, key, "arrival airport id must be positive")
		}
		b.Where("f.arrival_airport_id", "=", *c.ArrivalAirportID)
	}
	if c.Date != nil {
		d := *c.Date
		b.Where("f.departure_time::date", "=", pgtype.Date{
			Time:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Valid: true,
		})
	}
	if c.Status != nil {
		if !c.Status.Valid() {
			return nil, invalidArgument(op, key, fmt.Sprintf("unknown flight status %q", *c.Status))
		}
		b.Where("f.status", "=", string(*c.Status))
	}
	return b, nil
}

// Create validates the flight before touching the database. An empty status
// is stored as SCHEDULED.
func (r *PGFlightRepository) Create(ctx context.Context, flight domain.Flight) (domain.Flight, error) {
	const op = "flight.Create"
	key := "number=" + flight.FlightNumber
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	if err := validateFlight(op, key, flight); err != nil {
		return domain.Flight{}, err
	}

	id, err := insertReturningID(ctx, r.db, op, key, insertFlightSQL, flightArgs(flight)...)
	if err != nil {
		return domain.Flight{}, err
	}
	flight.ID = id
	return flight, nil
}

func (r *PGFlightRepository) Update(ctx context.Context, flight domain.Flight) error {
	const op = "flight.Update"
	key := idKey(flight.ID)
	if err := validateFlight(op, key, flight); err != nil {
		return err
	}
	if err := requireID(op, flight.ID, "flight"); err != nil {
		return err
	}

	affected, err := execAffected(ctx, r.db, op, key, updateFlightSQL, append(flightArgs(flight), flight.ID)...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFound(op, key)
	}
	return nil
}

func (r *PGFlightRepository) UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (bool, error) {
	const op = "flight.UpdateStatus"
	key := idKey(id)
	if err := requireID(op, id, "flight"); err != nil {
		return false, err
	}
	if !status.Valid() {
		return false, invalidArgument(op, key, fmt.Sprintf("unknown flight status %q", status))
	}

	affected, err := execAffected(ctx, r.db, op, key, updateFlightStatusSQL, string(status), id)
	return affected > 0, err
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const op = "flight.Delete"
	if err := requireID(op, id, "flight"); err != nil {
		return false, err
	}
	affected, err := execAffected(ctx, r.db, op, idKey(id), deleteFlightSQL, id)
	return affected > 0, err
}

// flightArgs binds times in UTC. The columns are TIMESTAMP, which keeps only
// the wall clock, so every row shares one zone and the CHECK compares instants.
func flightArgs(f domain.Flight) []any {
	return []any{
		f.FlightNumber,
		f.Airline.ID,
		f.DepartureAirport.ID,
		f.ArrivalAirport.ID,
		f.DepartureTime.UTC(),
		f.ArrivalTime.UTC(),
		f.BasePrice,
		string(f.Status),
	}
}

func validateFlight(op, key string, f domain.Flight) error {
	switch {
	case blank(f.FlightNumber):
		return invalidArgument(op, key, "flight number is required")
	case f.Airline.ID <= 0:
		return invalidArgument(op, key, "airline is required")
	case f.DepartureAirport.ID <= 0:
		return invalidArgument(op, key, "departure airport is required")
	case f.ArrivalAirport.ID <= 0:
		return invalidArgument(op, key, "arrival airport is required")
	case f.DepartureTime.IsZero() || f.ArrivalTime.IsZero():
		return invalidArgument(op, key, "departure and arrival times are required")
	case !f.ArrivalTime.After(f.DepartureTime):
		return invalidArgument(op, key, "arrival time must be after departure time")
	case f.BasePrice.IsNegative():
		return invalidArgument(op, key, "base price must not be negative")
	case !f.Status.Valid():
		return invalidArgument(op, key, fmt.Sprintf("unknown flight status %q", f.Status))
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
