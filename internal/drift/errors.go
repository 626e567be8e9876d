package drift

import "errors"

// Domain errors for drift simulation requests.
var (
	// ErrParticles indicates a non-positive particle count.
	ErrParticles = errors.New("drift: particle count must be positive")

	// ErrHorizon indicates a non-positive simulation horizon.
	ErrHorizon = errors.New("drift: horizon hours must be positive")

	// ErrDomain indicates the provider carries an invalid domain.
	ErrDomain = errors.New("drift: invalid spatial domain")

	// ErrDirection indicates an unrecognized direction name.
	ErrDirection = errors.New("drift: unknown direction")

	// ErrProvider indicates the simulator has no field provider.
	ErrProvider = errors.New("drift: nil field provider")
)
