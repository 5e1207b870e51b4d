package dom

import "errors"

// ErrInvalidInput is the root cause for every typed failure this module
// surfaces: input that cannot be tokenized (invalid encoding) and structured
// data that does not match the node shape. Tag-matching irregularities are
// never errors; they are recovered during tree construction.
var ErrInvalidInput = errors.New("invalid input")
