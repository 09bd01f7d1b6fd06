package linker

import (
	"errors"
	"fmt"

	"github.com/venvlink/venvlink/internal/filesystem"
)

var (
	// ErrStoreMissing matches a *StoreMissingError.
	ErrStoreMissing = errors.New("shared store missing")
	// ErrDeclined is returned when the operator refuses a deletion.
	ErrDeclined = errors.New("aborted")
	// ErrCommandFailed wraps an external command failure in strict mode.
	ErrCommandFailed = errors.New("external command failed")
)

// StoreMissingError reports that the shared store is absent or not a
// directory. The store is never created automatically.
type StoreMissingError struct {
	Dir string
}

func (e *StoreMissingError) Error() string {
	return fmt.Sprintf("the folder %s doesn't exist", e.Dir)
}

func (e *StoreMissingError) Is(target error) bool {
	return target == ErrStoreMissing
}

// RemoveError carries the OS error from a failed deletion.
type RemoveError struct {
	Path string
	Kind filesystem.Kind
	Err  error
}

func (e *RemoveError) Error() string {
	return fmt.Sprintf("removing %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *RemoveError) Unwrap() error {
	return e.Err
}
