package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/database"
	"github.com/Domenick1991/flightbooking/internal/domain"
)

type AirportRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Airport, bool, error)
	FindAll(ctx context.Context) ([]domain.Airport, error)
	FindByCountry(ctx context.Context, country string) ([]domain.Airport, error)
	FindByCity(ctx context.Context, city string) ([]domain.Airport, error)
	FindByIataCode(ctx context.Context, code string) (domain.Airport, bool, error)
	FindByIcaoCode(ctx context.Context, code string) (domain.Airport, bool, error)
	Create(ctx context.Context, airport domain.Airport) (domain.Airport, error)
	Update(ctx context.Context, airport domain.Airport) error
	Delete(ctx context.Context, id int64) (bool, error)
}

const (
	selectAirportsSQL       = `SELECT airport_id, name, city, country, iata_code, icao_code, timezone FROM airports`
	selectAirportByIDSQL    = selectAirportsSQL + ` WHERE airport_id = $1`
	selectAirportsByCountry = selectAirportsSQL + ` WHERE country = $1`
	selectAirportsByCity    = selectAirportsSQL + ` WHERE city = $1`
	selectAirportByIataSQL  = selectAirportsSQL + ` WHERE iata_code = $1`
	selectAirportByIcaoSQL  = selectAirportsSQL + ` WHERE icao_code = $1`

	insertAirportSQL = `INSERT INTO airports (name, city, country, iata_code, icao_code, timezone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING airport_id`
	updateAirportSQL = `UPDATE airports
		SET name = $1, city = $2, country = $3, iata_code = $4, icao_code = $5, timezone = $6
		WHERE airport_id = $7`
	deleteAirportSQL = `DELETE FROM airports WHERE airport_id = $1`
)

type PGAirportRepository struct {
	db database.Provider
}

func NewAirportRepository(db database.Provider) *PGAirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) FindByID(ctx context.Context, id int64) (domain.Airport, bool, error) {
	const op = "airport.FindByID"
	if err := requireID(op, id, "airport"); err != nil {
		return domain.Airport{}, false, err
	}
	return queryOne(ctx, r.db, op, idKey(id), scanAirport, selectAirportByIDSQL, id)
}

// FindAll returns airports in storage order.
func (r *PGAirportRepository) FindAll(ctx context.Context) ([]domain.Airport, error) {
	return queryAll(ctx, r.db, "airport.FindAll", "", scanAirport, selectAirportsSQL)
}

func (r *PGAirportRepository) FindByCountry(ctx context.Context, country string) ([]domain.Airport, error) {
	return queryAll(ctx, r.db, "airport.FindByCountry", "country="+country, scanAirport, selectAirportsByCountry, country)
}

func (r *PGAirportRepository) FindByCity(ctx context.Context, city string) ([]domain.Airport, error) {
	return queryAll(ctx, r.db, "airport.FindByCity", "city="+city, scanAirport, selectAirportsByCity, city)
}

func (r *PGAirportRepository) FindByIataCode(ctx context.Context, code string) (domain.Airport, bool, error) {
	return queryOne(ctx, r.db, "airport.FindByIataCode", "iata="+code, scanAirport, selectAirportByIataSQL, code)
}

func (r *PGAirportRepository) FindByIcaoCode(ctx context.Context, code string) (domain.Airport, bool, error) {
	return queryOne(ctx, r.db, "airport.FindByIcaoCode", "icao="+code, scanAirport, selectAirportByIcaoSQL, code)
}

func (r *PGAirportRepository) Create(ctx context.Context, airport domain.Airport) (domain.Airport, error) {
	const op = "airport.Create"
	key := "iata=" + airport.IataCode
	if err := validateAirport(op, key, airport); err != nil {
		return domain.Airport{}, err
	}

	id, err := insertReturningID(ctx, r.db, op, key, insertAirportSQL,
		airport.Name, airport.City, airport.Country, airport.IataCode, airport.IcaoCode, airport.Timezone)
	if err != nil {
		return domain.Airport{}, err
	}
	airport.ID = id
	return airport, nil
}

// Update replaces every mutable column. It fails with ErrNotFound when no
// airport has the given id.
func (r *PGAirportRepository) Update(ctx context.Context, airport domain.Airport) error {
	const op = "airport.Update"
	key := idKey(airport.ID)
	if err := requireID(op, airport.ID, "airport"); err != nil {
		return err
	}
	if err := validateAirport(op, key, airport); err != nil {
		return err
	}

	affected, err := execAffected(ctx, r.db, op, key, updateAirportSQL,
		airport.Name, airport.City, airport.Country, airport.IataCode, airport.IcaoCode, airport.Timezone, airport.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFound(op, key)
	}
	return nil
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const op = "airport.Delete"
	if err := requireID(op, id, "airport"); err != nil {
		return false, err
	}
	affected, err := execAffected(ctx, r.db, op, idKey(id), deleteAirportSQL, id)
	return affected > 0, err
}

func validateAirport(op, key string, a domain.Airport) error {
	switch {
	case blank(a.Name):
		return invalidArgument(op, key, "airport name is required")
	case blank(a.City):
		return invalidArgument(op, key, "airport city is required")
	case blank(a.Country):
		return invalidArgument(op, key, "airport country is required")
	case !isCode(a.IataCode, 3, false):
		return invalidArgument(op, key, "airport IATA code must be 3 upper-case letters")
	case !isCode(a.IcaoCode, 4, false):
		return invalidArgument(op, key, "airport ICAO code must be 4 upper-case letters")
	case blank(a.Timezone):
		return invalidArgument(op, key, "airport timezone is required")
	}
	return nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
