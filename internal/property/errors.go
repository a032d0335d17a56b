package property

import "errors"

// ErrNoPropertyFound is returned when no $-prefixed identifier can be
// resolved at or near the requested position.
var ErrNoPropertyFound = errors.New("no property found")
