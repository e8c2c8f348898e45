package postgres

import (
	"errors"
	"fmt"

	"github.com/dom/qna-service/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

// queryError logs the driver error and hides it behind domain.ErrDatabaseQuery.
func queryError(log logrus.FieldLogger, op string, err error) error {
	fields := logrus.Fields{
		"operation": op,
		"error":     err,
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		fields["sqlstate"] = pgErr.Code
		if pgErr.Code == pgerrcode.UniqueViolation || pgErr.Code == pgerrcode.ForeignKeyViolation {
			fields["constraint"] = pgErr.ConstraintName
			log.WithFields(fields).Warn("constraint violation")
		} else {
			log.WithFields(fields).Error("database query failed")
		}
	} else {
		log.WithFields(fields).Error("database query failed")
	}

	return oops.Code("DATABASE_QUERY").
		With("operation", op).
		Wrap(fmt.Errorf("%w: %w", domain.ErrDatabaseQuery, err))
}

func questionNotFound(op string, id domain.QuestionID) error {
	return oops.Code("QUESTION_NOT_FOUND").
		With("operation", op).
		With("question_id", id).
		Wrap(domain.ErrQuestionNotFound)
}
