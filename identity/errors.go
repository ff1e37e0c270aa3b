package identity

import "errors"

// Sentinel errors for identity generation.
var (
	ErrGeneration    = errors.New("identity generation failed")
	ErrUnknownScheme = errors.New("unknown identity scheme")
)
