package postgres

import (
	"database/sql/driver"
	"errors"
	"net"
	"testing"

	"noviqueen/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorTaxonomy(t *testing.T) {
	assert.NoError(t, mapError(nil))

	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23505"}), store.ErrDuplicate)

	// Connection exceptions (SQLSTATE class 08) and dropped connections
	// mean the backend is unreachable, not that the request was bad.
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "08006"}), store.ErrUnavailable)
	assert.ErrorIs(t, mapError(driver.ErrBadConn), store.ErrUnavailable)
	assert.ErrorIs(t, mapError(&net.OpError{Op: "read", Err: errors.New("connection reset by peer")}), store.ErrUnavailable)

	// Anything else passes through untouched.
	plain := errors.New("division by zero")
	assert.Equal(t, plain, mapError(plain))
	assert.Equal(t, &pgconn.PgError{Code: "42P01"}, mapError(&pgconn.PgError{Code: "42P01"}))
}
