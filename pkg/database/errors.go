package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgDuplicateObject = "42710"

func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgDuplicateObject
}
