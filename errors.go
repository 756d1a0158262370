package crush

import "errors"

// Sentinel errors returned by the package's entry points, checked with
// errors.Is at call sites the way the reference's callers switch on its
// integer error codes.
var (
	// ErrInvalidLevel is returned by WorkmemSize and Pack when level is
	// outside [5, 10].
	ErrInvalidLevel = errors.New("crush: invalid level")

	// ErrCorruptStream is returned by Depack and DepackFromStream when a
	// match references bytes not yet produced, or the input ends before
	// the requested number of bytes has been produced.
	ErrCorruptStream = errors.New("crush: corrupt stream")
)
