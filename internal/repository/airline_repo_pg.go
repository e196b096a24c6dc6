package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/database"
	"github.com/Domenick1991/flightbooking/internal/domain"
)

type AirlineRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Airline, bool, error)
	FindAll(ctx context.Context) ([]domain.Airline, error)
	FindActive(ctx context.Context) ([]domain.Airline, error)
	FindByIataCode(ctx context.Context, code string) (domain.Airline, bool, error)
	FindByIcaoCode(ctx context.Context, code string) (domain.Airline, bool, error)
	Create(ctx context.Context, airline domain.Airline) (domain.Airline, error)
	Update(ctx context.Context, airline domain.Airline) error
	Delete(ctx context.Context, id int64) (bool, error)
}

const (
	selectAirlinesSQL      = `SELECT airline_id, name, iata_code, icao_code, country, is_active FROM airlines`
	selectAirlineByIDSQL   = selectAirlinesSQL + ` WHERE airline_id = $1`
	selectActiveAirlines   = selectAirlinesSQL + ` WHERE is_active ORDER BY name`
	selectAirlineByIataSQL = selectAirlinesSQL + ` WHERE iata_code = $1`
	selectAirlineByIcaoSQL = selectAirlinesSQL + ` WHERE icao_code = $1`

	insertAirlineSQL = `INSERT INTO airlines (name, iata_code, icao_code, country, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING airline_id`
	updateAirlineSQL = `UPDATE airlines
		SET name = $1, iata_code = $2, icao_code = $3, country = $4, is_active = $5
		WHERE airline_id = $6`
	deleteAirlineSQL = `DELETE FROM airlines WHERE airline_id = $1`
)

type PGAirlineRepository struct {
	db database.Provider
}

func NewAirlineRepository(db database.Provider) *PGAirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) FindByID(ctx context.Context, id int64) (domain.Airline, bool, error) {
	const op = "airline.FindByID"
	if err := requireID(op, id, "airline"); err != nil {
		return domain.Airline{}, false, err
	}
	return queryOne(ctx, r.db, op, idKey(id), scanAirline, selectAirlineByIDSQL, id)
}

func (r *PGAirlineRepository) FindAll(ctx context.Context) ([]domain.Airline, error) {
	return queryAll(ctx, r.db, "airline.FindAll", "", scanAirline, selectAirlinesSQL)
}

func (r *PGAirlineRepository) FindActive(ctx context.Context) ([]domain.Airline, error) {
	return queryAll(ctx, r.db, "airline.FindActive", "", scanAirline, selectActiveAirlines)
}

func (r *PGAirlineRepository) FindByIataCode(ctx context.Context, code string) (domain.Airline, bool, error) {
	return queryOne(ctx, r.db, "airline.FindByIataCode", "iata="+code, scanAirline, selectAirlineByIataSQL, code)
}

func (r *PGAirlineRepository) FindByIcaoCode(ctx context.Context, code string) (domain.Airline, bool, error) {
	return queryOne(ctx, r.db, "airline.FindByIcaoCode", "icao="+code, scanAirline, selectAirlineByIcaoSQL, code)
}

func (r *PGAirlineRepository) Create(ctx context.Context, airline domain.Airline) (domain.Airline, error) {
	const op = "airline.Create"
	key := "iata=" + airline.IataCode
	if err := validateAirline(op, key, airline); err != nil {
		return domain.Airline{}, err
	}

	id, err := insertReturningID(ctx, r.db, op, key, insertAirlineSQL,
		airline.Name, airline.IataCode, airline.IcaoCode, airline.Country, airline.Active)
	if err != nil {
		return domain.Airline{}, err
	}
	airline.ID = id
	return airline, nil
}

func (r *PGAirlineRepository) Update(ctx context.Context, airline domain.Airline) error {
	const op = "airline.Update"
	key := idKey(airline.ID)
	if err := requireID(op, airline.ID, "airline"); err != nil {
		return err
	}
	if err := validateAirline(op, key, airline); err != nil {
		return err
	}

	affected, err := execAffected(ctx, r.db, op, key, updateAirlineSQL,
		airline.Name, airline.IataCode, airline.IcaoCode, airline.Country, airline.Active, airline.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFound(op, key)
	}
	return nil
}

// Delete fails with ErrConstraintViolation while flights still reference the airline.
func (r *PGAirlineRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const op = "airline.Delete"
	if err := requireID(op, id, "airline"); err != nil {
		return false, err
	}
	affected, err := execAffected(ctx, r.db, op, idKey(id), deleteAirlineSQL, id)
	return affected > 0, err
}

func validateAirline(op, key string, a domain.Airline) error {
	switch {
	case blank(a.Name):
		return invalidArgument(op, key, "airline name is required")
	case !isCode(a.IataCode, 2, true):
		return invalidArgument(op, key, "airline IATA code must be 2 upper-case letters or digits")
	case !isCode(a.IcaoCode, 3, false):
		return invalidArgument(op, key, "airline ICAO code must be 3 upper-case letters")
	case blank(a.Country):
		return invalidArgument(op, key, "airline country is required")
	}
	return nil
}

var _ AirlineRepository = (*PGAirlineRepository)(nil)
