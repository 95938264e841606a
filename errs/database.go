package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrStorageWrite       = errors.New("storage write failed")
)

func NewNotFound(entity string) *ApiErr {
	return newApiErr(http.StatusNotFound, fmt.Errorf("%s %w", entity, ErrNotFound), "", "", nil)
}

// NewDatabaseError classifies a driver error by its message, since Postgres
// and SQLite report constraint failures differently. A duplicate slug is a
// 409; everything unrecognised is a 500.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)
	if cause == nil {
		return newApiErr(http.StatusInternalServerError, ErrDatabaseQuery, "", details, nil)
	}

	msg := strings.ToLower(cause.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return newApiErr(http.StatusConflict, fmt.Errorf("%s %w", entity, ErrAlreadyExists), uniqueColumn(msg), details, cause)
	case strings.Contains(msg, "record not found"):
		return newApiErr(http.StatusNotFound, fmt.Errorf("%s %w", entity, ErrNotFound), "", details, cause)
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "database is closed"):
		return newApiErr(http.StatusServiceUnavailable, ErrDatabaseConnection, "", "Unable to reach the database", cause)
	}
	return newApiErr(http.StatusInternalServerError, ErrDatabaseQuery, "", details, cause)
}

// uniqueColumn pulls the column out of SQLite's "UNIQUE constraint failed:
// table.column". Postgres names the index instead, so nothing is returned.
func uniqueColumn(msg string) string {
	_, after, ok := strings.Cut(msg, "unique constraint failed:")
	if !ok {
		return ""
	}
	target := strings.TrimSpace(strings.SplitN(after, ",", 2)[0])
	if _, column, ok := strings.Cut(target, "."); ok {
		return column
	}
	return target
}

func NewStorageWriteError(key string, cause error) *ApiErr {
	return newApiErr(http.StatusBadGateway, ErrStorageWrite, "storage",
		fmt.Sprintf("Failed to store object %s", key), cause)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsStorageWriteError(err error) bool {
	return errors.Is(err, ErrStorageWrite)
}
