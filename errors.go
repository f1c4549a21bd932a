package fontfiles

import (
	"errors"
	"fmt"

	"github.com/npillmayer/fontfiles/otquery"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("font not found")

// NotFoundError is returned when no installed font matches a request.
type NotFoundError struct {
	Request otquery.Descriptor
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no installed font for %s", e.Request)
}

// Is makes NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
