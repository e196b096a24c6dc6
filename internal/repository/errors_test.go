package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify_ConstraintViolations(t *testing.T) {
	for _, code := range []string{uniqueViolation, foreignKeyViolation, checkViolation, notNullViolation} {
		pgErr := &pgconn.PgError{Code: code, ConstraintName: "airports_iata_code_key", Message: "boom"}

		err := classify("airport.Create", "iata=LHR", pgErr)

		assert.True(t, errors.Is(err, ErrConstraintViolation), code)
		assert.False(t, errors.Is(err, ErrExecution), code)

		var got *pgconn.PgError
		assert.True(t, errors.As(err, &got))
		assert.Equal(t, code, got.Code)

		var repoErr *Error
		assert.True(t, errors.As(err, &repoErr))
		assert.Equal(t, "airports_iata_code_key", repoErr.Constraint)
		assert.Equal(t, "airport.Create", repoErr.Op)
	}
}

func TestClassify_OtherErrorsAreExecutionFailures(t *testing.T) {
	cause := errors.New("conn reset")
	err := classify("flight.FindAll", "", cause)

	assert.True(t, errors.Is(err, ErrExecution))
	assert.True(t, errors.Is(err, cause))

	syntax := &pgconn.PgError{Code: "42601"}
	assert.True(t, errors.Is(classify("op", "", syntax), ErrExecution))
}

func TestClassify_PassesThroughRepositoryErrors(t *testing.T) {
	nf := NotFound("flight.Update", "id=3")
	assert.Same(t, nf, classify("other", "", nf))
	assert.NoError(t, classify("op", "", nil))
}

func TestError_Message(t *testing.T) {
	err := &Error{
		Op:         "airport.Create",
		Key:        "iata=LHR",
		Kind:       ErrConstraintViolation,
		Constraint: "airports_iata_code_key",
		Err:        errors.New("duplicate key"),
	}
	assert.Equal(t, "airport.Create [iata=LHR]: constraint violation on airports_iata_code_key: duplicate key", err.Error())
	assert.Equal(t, "flight.Update [id=9]: not found", NotFound("flight.Update", "id=9").Error())
	assert.Equal(t, "flight.Delete [id=0]: invalid argument: flight id must be positive",
		requireID("flight.Delete", 0, "flight").Error())
}

func TestIsCode(t *testing.T) {
	assert.True(t, isCode("LHR", 3, false))
	assert.False(t, isCode("LH", 3, false))
	assert.False(t, isCode("lhr", 3, false))
	assert.False(t, isCode("L1R", 3, false))
	assert.True(t, isCode("S7", 2, true))
	assert.False(t, isCode("S-", 2, true))
}

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}
