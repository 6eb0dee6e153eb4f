package pattern

import (
	"errors"
	"fmt"
)

var (
	ErrPatternNotFound   = errors.New("pattern not found")
	ErrUnknownVariation  = errors.New("unknown variation")
	ErrUnknownTransition = errors.New("unknown transition")
)

// LookupError reports a bank name that does not exist
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("pattern %q: %v", e.Name, ErrPatternNotFound)
}

func (e *LookupError) Unwrap() error {
	return ErrPatternNotFound
}
