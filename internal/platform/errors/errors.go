package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrMalformedLine  = errors.New("malformed line")
	ErrNoOpenEntry    = errors.New("no current entry exists, clock in first")
	ErrEntryOpen      = errors.New("current entry exists, clock out first")
	ErrSpansDays      = errors.New("can't process entries which span multiple days")
	ErrEndBeforeStart = errors.New("end time precedes start time")
)
