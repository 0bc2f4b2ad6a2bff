package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// DefaultQueryTimeout bounds a single query when no timeout is configured
const DefaultQueryTimeout = 5 * time.Second

// PostgreSQL error codes the repositories react to
const (
	pgInsufficientPrivilege     = "42501"
	pgInvalidAuthorization      = "28000"
	pgUniqueViolation           = "23505"
	pgForeignKeyViolation       = "23503"
	pgInvalidTextRepresentation = "22P02"
)

// querier is the subset of pgxpool.Pool the repositories use
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ querier = (*pgxpool.Pool)(nil)

// NewPool opens a connection pool and checks that the database answers
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// base carries what every repository shares
type base struct {
	db      querier
	timeout time.Duration
}

func newBase(db querier, timeout time.Duration) base {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return base{db: db, timeout: timeout}
}

// withTimeout derives the per-query context
func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

// mapError translates driver errors into domain errors. notFound is returned
// for pgx.ErrNoRows.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInsufficientPrivilege, pgInvalidAuthorization:
			return fmt.Errorf("%w: %s", domain.ErrRecordAccessDenied, pgErr.Message)
		case pgForeignKeyViolation, pgInvalidTextRepresentation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message)
		}
	}

	return fmt.Errorf("%w: %v", domain.ErrRecordSourceUnavailable, err)
}

// isPgUniqueViolation checks if an error is a PostgreSQL unique constraint violation
func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func decimalPtrToPgNumeric(d *decimal.Decimal) (pgtype.Numeric, error) {
	if d == nil {
		return pgtype.Numeric{}, nil
	}
	return decimalToPgNumeric(*d)
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func pgNumericToDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := pgNumericToDecimal(n)
	return &d
}

func dateToPg(d domain.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time, Valid: true}
}

func datePtrToPg(d *domain.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return dateToPg(*d)
}

// pgDateToDomain is where every stored date becomes a domain.Date
func pgDateToDomain(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}
	return domain.NewDate(d.Time)
}

func pgDateToDomainPtr(d pgtype.Date) *domain.Date {
	if !d.Valid {
		return nil
	}
	date := pgDateToDomain(d)
	return &date
}

func stringPtrToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func pgTextToStringPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
