package domain

import "errors"

var (
	ErrNoUsableSnapshot       = errors.New("no usable snapshot for provider")
	ErrNoProviders            = errors.New("no provider produced a usable snapshot")
	ErrUnknownLayer           = errors.New("unknown boundary layer")
	ErrObjectStoreUnavailable = errors.New("object store unavailable")
	ErrBoundaryUnavailable    = errors.New("boundary layer unavailable")
)
