// File: internal/services/classifier/shape.go
package classifier

import (
	"errors"
	"fmt"
)

var errMissingArray = errors.New("response is not a result array")

type shapeError struct {
	index int
	field string
}

func (e *shapeError) Error() string {
	return fmt.Sprintf("result %d: missing %s", e.index, e.field)
}
