package errors

import (
	"errors"
	"fmt"
)

// Upload-level failures. These abort the whole batch before anything is persisted.
var ErrUnrecognizedFormat = errors.New("CSV header does not match any known bank export format")
var ErrEmptyFile = errors.New("CSV file contains no data rows")
var ErrFileTooLarge = errors.New("uploaded file exceeds the size limit")

var ErrRuleNotFound = errors.New("category rule not found")
var ErrTransactionNotFound = errors.New("transaction not found")

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

// NewInvalidRulePattern reports a regex that does not compile. Rules carrying
// such a pattern are rejected before they are ever persisted.
func NewInvalidRulePattern(pattern string, err error) error {
	return &ValidationError{Msg: fmt.Sprintf("invalid regex pattern %q: %v", pattern, err)}
}

// RowParseError marks a single unparsable CSV row. The ingest batch skips and
// counts the row instead of failing.
type RowParseError struct {
	Row int // 1-based data row index
	Msg string
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
}

func NewRowParseError(row int, format string, args ...interface{}) error {
	return &RowParseError{Row: row, Msg: fmt.Sprintf(format, args...)}
}

func IsRowParseError(err error) bool {
	var rowParseError *RowParseError
	ok := errors.As(err, &rowParseError)
	return ok
}
