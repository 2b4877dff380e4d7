package vault

import (
	"errors"
	"fmt"

	"github.com/Paintersrp/knot/internal/handler"
)

var (
	// ErrInvalidTransition is returned when an intent is not accepted in the
	// current mode. State is left untouched.
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNoSubfolders      = errors.New("layout has no subfolders")
	ErrInvalidName       = errors.New("invalid name")
	ErrOutsideVault      = handler.ErrOutsideVault
	ErrUnknownCategory   = errors.New("unknown category")
	ErrUnknownSubfolder  = errors.New("unknown subfolder")
)

// MutationError reports a create or delete that did not take effect.
type MutationError struct {
	Op   string
	Path string
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
