package walker

import "errors"

// ErrInvalidParameter indicates a construction parameter outside its valid
// range. No model is returned alongside it.
var ErrInvalidParameter = errors.New("walker: invalid parameter")
