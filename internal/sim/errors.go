package sim

import "errors"

// ErrInvalidConfig indicates a run configuration the runner cannot honor.
var ErrInvalidConfig = errors.New("sim: invalid config")
