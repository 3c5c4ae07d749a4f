package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalid      = errors.New("invalid")
	ErrNotConfirmed = errors.New("not confirmed")

	// ErrEmptyEntry is returned when an entry has neither title nor body.
	ErrEmptyEntry = fmt.Errorf("%w: entry needs a title or a body", ErrInvalid)
	// ErrInvalidImage is returned for uploads that are not images or too large.
	ErrInvalidImage = fmt.Errorf("%w: image", ErrInvalid)
)
