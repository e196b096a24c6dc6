package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Domenick1991/flightbooking/internal/database"
)

// predicate is one "column op $n" clause. The placeholder index is assigned
// when the statement is rendered, so clauses can be added or skipped freely.
type predicate struct {
	column string
	op     string
	arg    any
}

type selectBuilder struct {
	base    string
	preds   []predicate
	orderBy string
}

func newSelect(base string) *selectBuilder {
	return &selectBuilder{base: base}
}

func (b *selectBuilder) Where(column, op string, arg any) *selectBuilder {
	b.preds = append(b.preds, predicate{column: column, op: op, arg: arg})
	return b
}

func (b *selectBuilder) OrderBy(clause string) *selectBuilder {
	b.orderBy = clause
	return b
}

// Build renders the statement. Predicates are ANDed in the order they were
// added and args are returned in placeholder order.
func (b *selectBuilder) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString(b.base)

	args := make([]any, 0, len(b.preds))
	for i, p := range b.preds {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, p.arg)
		fmt.Fprintf(&sb, "%s %s $%d", p.column, p.op, len(args))
	}

	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	return sb.String(), args
}

// withConn runs fn on one pooled connection and releases it on every path.
func withConn(ctx context.Context, p database.Provider, op, key string, fn func(conn database.Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return connectionUnavailable(op, key, err)
	}
	defer conn.Release()

	return classify(op, key, fn(conn))
}

func queryAll[T any](ctx context.Context, p database.Provider, op, key string, scan pgx.RowToFunc[T], sql string, args ...any) ([]T, error) {
	var out []T
	err := withConn(ctx, p, op, key, func(conn database.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, scan)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]T, 0)
	}
	return out, nil
}

// queryOne returns found=false, not an error, when no row matches.
func queryOne[T any](ctx context.Context, p database.Provider, op, key string, scan pgx.RowToFunc[T], sql string, args ...any) (T, bool, error) {
	var (
		out   T
		found bool
	)
	err := withConn(ctx, p, op, key, func(conn database.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		v, err := pgx.CollectOneRow(rows, scan)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		out, found = v, true
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return out, found, nil
}

func insertReturningID(ctx context.Context, p database.Provider, op, key, sql string, args ...any) (int64, error) {
	var id int64
	err := withConn(ctx, p, op, key, func(conn database.Conn) error {
		return conn.QueryRow(ctx, sql, args...).Scan(&id)
	})
	return id, err
}

func execAffected(ctx context.Context, p database.Provider, op, key, sql string, args ...any) (int64, error) {
	var affected int64
	err := withConn(ctx, p, op, key, func(conn database.Conn) error {
		tag, err := conn.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	return affected, err
}
