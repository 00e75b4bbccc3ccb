package analyzer

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every error Add returns for input that
// is not an object.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError names the type that was passed instead of an object.
type InvalidArgumentError struct {
	Type string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("argument of Builder.Add must be an object but %q type given", e.Type)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
