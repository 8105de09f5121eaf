package topology

import "errors"

var (
	// ErrForwardReference is returned when a declaration or rule refers to
	// something that has not been declared yet.
	ErrForwardReference = errors.New("reference to undeclared resource")

	// ErrSealed is returned when a resource is declared after Seal.
	ErrSealed = errors.New("builder is sealed; only rules may be added")

	// ErrNotSealed is returned when a rule is added, or Build is called,
	// before Seal.
	ErrNotSealed = errors.New("builder is not sealed; declare resources and call Seal first")

	// ErrDuplicate is returned when a name is declared twice.
	ErrDuplicate = errors.New("duplicate declaration")

	// ErrInvalid is returned for malformed declarations.
	ErrInvalid = errors.New("invalid declaration")
)
