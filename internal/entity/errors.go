package entity

import "errors"

// Domain sentinels shared by repositories and services. Handlers map these to
// HTTP status codes; everything else surfaces as an internal error.
var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnknownModel        = errors.New("unknown model")
	ErrModelDisabled       = errors.New("model disabled")
	ErrMissingInput        = errors.New("missing required input")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUserBanned          = errors.New("user banned")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderJobFailed   = errors.New("provider job failed")
	ErrGenerationTimeout   = errors.New("generation timed out")
)
