// Package guard provides a lightweight constructor guard for value objects
// and commands. Embedding a ConstructorGuard in a struct makes it possible to
// detect zero-value instances that bypassed the validating constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not created through its constructor and no custom error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value is
// invalid; obtain one via NewConstructorGuard inside the owning constructor.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard marking its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil when the owner was built through its constructor.
// Otherwise it returns the supplied error, or ErrDefaultConstructorGuard when
// err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
