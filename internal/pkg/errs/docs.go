// Package errs holds the typed errors shared by the domain, the use cases and
// the adapters.
//
// Every error comes as a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound, ErrEditNotAllowed) and a struct
// carrying the details, whose Unwrap returns the sentinel. Use errors.Is to
// classify and errors.As to read the details. EditNotAllowedError.Kind tells
// which edit rule rejected the change; the HTTP adapter reports it to the
// client as is.
package errs
