package protocol

import "errors"

// ErrInvalidParameter covers every construction-time failure: non-positive
// amplitudes, non-positive growth ratios, malformed level tables, and a
// FEMA-461 growth ratio too small to make progress in floating point.
// Generation either fully succeeds or fails before producing a sequence.
var ErrInvalidParameter = errors.New("protocol: invalid parameter")
