package database

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TranslatePgError maps driver failures to application errors. Unknown
// errors are returned unchanged and end up as Internal at the boundary.
func TranslatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("Record not found")
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return duplicate(constraintColumn(pgErr.TableName, pgErr.ConstraintName), err)
	case pgForeignKeyViolation:
		e := apperrors.Validation("Referenced record does not exist")
		e.Err = err
		return e
	}
	return err
}

// constraintColumn turns "users_email_key" into "email".
func constraintColumn(table, constraint string) string {
	c := strings.TrimSuffix(constraint, "_key")
	if table != "" {
		c = strings.TrimPrefix(c, table+"_")
	}
	if c == "" {
		return "value"
	}
	return c
}

var mongoIndexRe = regexp.MustCompile(`index: (\w+?)(_-?1)*\s`)

// TranslateMongoError is TranslatePgError for the Mongo driver.
func TranslateMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound("Record not found")
	}
	if mongo.IsDuplicateKeyError(err) {
		field := "value"
		if m := mongoIndexRe.FindStringSubmatch(err.Error()); m != nil {
			field = m[1]
		}
		return duplicate(field, err)
	}
	return err
}

func duplicate(field string, cause error) error {
	e := apperrors.Conflict("A record with this " + field + " already exists")
	e.Err = cause
	return e
}
