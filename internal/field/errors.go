package field

import "errors"

// Sampling and construction errors.
var (
	// ErrUnavailable indicates the dataset could not produce a sample
	// for this call. The provider falls back to synthetic fields.
	ErrUnavailable = errors.New("field: sample unavailable")

	// ErrMissingVariable indicates a dataset lacks a required variable
	// or coordinate. The whole dataset is rejected.
	ErrMissingVariable = errors.New("field: dataset missing required variable")

	// ErrNotMonotonic indicates a coordinate axis is not strictly increasing.
	ErrNotMonotonic = errors.New("field: coordinate axis not monotonically increasing")

	// ErrUnknownModel indicates a synthetic model name with no registry entry.
	ErrUnknownModel = errors.New("field: unknown model")

	// ErrUnknownParam indicates a parameter name the model does not expose.
	ErrUnknownParam = errors.New("field: unknown parameter")
)
