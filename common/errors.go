package common

import "github.com/go-faster/errors"

var (
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnsupportedTarget   = errors.New("unsupported target")
	ErrNoGatesFound        = errors.New("no gates found")
	ErrQubitBounds         = errors.New("qubit count out of bounds")
	ErrNothingToUndo       = errors.New("nothing to undo")
	ErrNothingToRedo       = errors.New("nothing to redo")
	ErrEmptyCell           = errors.New("no gate at the given cell")
	ErrBusy                = errors.New("session is busy")
	ErrNotFound            = errors.New("not found")
)

// IsRecoverable reports whether err is one of the conditions that leave the
// circuit untouched and only need a notice for the user.
func IsRecoverable(err error) bool {
	for _, target := range []error{
		ErrInvalidCoordinate,
		ErrNoGatesFound,
		ErrQubitBounds,
		ErrNothingToUndo,
		ErrNothingToRedo,
		ErrEmptyCell,
		ErrBusy,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
