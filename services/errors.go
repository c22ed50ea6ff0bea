package services

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound covers both genuinely missing records and ownership
// violations. Handlers map it to 404 so a caller cannot distinguish
// someone else's record from a nonexistent one.
var ErrNotFound = errors.New("not found")

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
