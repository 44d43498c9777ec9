package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNetwork         = errors.New("network error")
	ErrHTTPStatus      = errors.New("unexpected http status")
	ErrMissingElement  = errors.New("element not found")
	ErrMissingState    = errors.New("No board state found in server response")
	ErrInvalidResponse = errors.New("Invalid server response")
	ErrFormNotFound    = errors.New("Move form not found")
	ErrSubmitInFlight  = errors.New("a move is already being submitted")
)

// StatusError - the server answered outside the 2xx range.
type StatusError struct {
	StatusCode int
}

func (that *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", that.StatusCode)
}

func (that *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// MissingElementsError - lists every required page element that was not found.
type MissingElementsError struct {
	IDs []string
}

func (that *MissingElementsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingElement, strings.Join(that.IDs, ", "))
}

func (that *MissingElementsError) Unwrap() []error {
	errs := []error{ErrMissingElement}
	for _, id := range that.IDs {
		if id == "moveForm" {
			errs = append(errs, ErrFormNotFound)
		}
	}

	return errs
}
