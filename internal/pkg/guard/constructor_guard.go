// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands to tell a value built through its constructor apart
// from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the object was not
// constructed and the caller did not supply a more specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the embedding object was created through its
// constructor. The zero value reports "not constructed".
//
// Example:
//
//	var ErrUpdateLinesCommandIsNotConstructed = errors.New("UpdateLinesCommand must be created via NewUpdateLinesCommand")
//
//	type UpdateLinesCommand struct {
//	    writes []LineWrite
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c UpdateLinesCommand) Validate() error {
//	    return c.guard.Validate(ErrUpdateLinesCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
