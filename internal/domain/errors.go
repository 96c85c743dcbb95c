package domain

import "errors"

var (
	ErrMissingIdentifier = errors.New("recording has no extractable identifier")
	ErrNoShowMatch       = errors.New("no show matched filter")
	ErrInvalidRetention  = errors.New("retention value must not be negative")
	ErrDeleteRejected    = errors.New("device rejected delete command")
)
