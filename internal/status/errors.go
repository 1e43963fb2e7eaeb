package status

import "errors"

// Start failures. Resisted is expected and probabilistic; callers decide
// whether the player sees anything.
var (
	ErrInvalidTarget     = errors.New("invalid target")
	ErrInvalidType       = errors.New("invalid status change type")
	ErrBlocked           = errors.New("status change blocked")
	ErrResisted          = errors.New("status change resisted")
	ErrPreconditionUnmet = errors.New("status change precondition unmet")
)
