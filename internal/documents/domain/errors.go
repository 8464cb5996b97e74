package domain

import "errors"

var (
	ErrInvalidIdentifier  = errors.New("invalid document identifier")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageWrite       = errors.New("storage write rejected")
)
