package catalog

import (
	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
)

var (
	// ErrUnavailable is returned when no catalog can be served: the cache is
	// empty and the collection metadata could not be fetched.
	ErrUnavailable = errs.New(errs.ErrCodeCatalogUnavailable, "card catalog is unavailable, try again shortly")

	// ErrNotFound is returned by [Service.ByID] for unknown ids.
	ErrNotFound = errs.New(errs.ErrCodeCardNotFound, "card not found")
)

// unavailable wraps the fetch failure behind a cold-start read. The result
// matches both ErrUnavailable and cause with errors.Is.
func unavailable(cause error) error {
	return errs.Wrap(errs.ErrCodeCatalogUnavailable, &unavailableCause{cause}, "%s", ErrUnavailable.Message)
}

type unavailableCause struct{ err error }

func (e *unavailableCause) Error() string   { return e.err.Error() }
func (e *unavailableCause) Unwrap() []error { return []error{ErrUnavailable, e.err} }
