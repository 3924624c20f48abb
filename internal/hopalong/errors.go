package hopalong

import "errors"

// ErrInvalidArgument indicates a caller contract violation such as a
// negative iteration count or an inverted sampling range.
var ErrInvalidArgument = errors.New("hopalong: invalid argument")
