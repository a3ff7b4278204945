package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/todozero/todozero/internal/apperr"
)

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	integrityViolation
)

// sqlite result codes, see https://www.sqlite.org/rescode.html
const (
	sqliteConstraint           = 19
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// classify maps driver errors from a write or lookup onto the domain errors.
// Anything it does not recognise is returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}

	switch v, detail := constraintViolation(err); v {
	case uniqueViolation:
		return &apperr.ConflictError{Field: conflictField(detail)}
	case integrityViolation:
		return fmt.Errorf("%w: %v", apperr.ErrIntegrity, err)
	}

	return err
}

// constraintViolation inspects postgres, mysql and sqlite errors and returns
// the kind of violation plus the text naming the violated constraint.
func constraintViolation(err error) (violation, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			if pgErr.ConstraintName != "" {
				return uniqueViolation, pgErr.ConstraintName
			}
			return uniqueViolation, pgErr.Detail
		case strings.HasPrefix(pgErr.Code, "23"), pgErr.Code == "22P02":
			return integrityViolation, pgErr.ConstraintName
		}
		return noViolation, ""
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			msg := myErr.Message
			if i := strings.Index(msg, "for key"); i >= 0 {
				msg = msg[i:]
			}
			return uniqueViolation, msg
		case 1048, 1216, 1217, 1451, 1452, 3819:
			return integrityViolation, myErr.Message
		}
		return noViolation, ""
	}

	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		code := coded.Code()
		switch {
		case code == sqliteConstraintUnique, code == sqliteConstraintPrimaryKey:
			msg := err.Error()
			if i := strings.Index(msg, "failed:"); i >= 0 {
				msg = msg[i:]
			}
			return uniqueViolation, msg
		case code&0xff == sqliteConstraint:
			return integrityViolation, err.Error()
		}
		return noViolation, ""
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return uniqueViolation, ""
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return integrityViolation, ""
	}

	return noViolation, ""
}

func conflictField(detail string) string {
	if strings.Contains(strings.ToLower(detail), apperr.FieldEmail) {
		return apperr.FieldEmail
	}
	return apperr.FieldUsername
}
