package source

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNoEmbeddedCover = errors.New("no embedded cover art")

// LoadError reports that a source could not be fetched or decoded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DecodeBlockedError reports that the host refused access to the pixels.
// Retrying without different credentials or headers will not help.
type DecodeBlockedError struct {
	Source string
	Status int
}

func (e *DecodeBlockedError) Error() string {
	return fmt.Sprintf("pixel access to %s blocked (status %d)", e.Source, e.Status)
}

type SeekTimeoutError struct {
	At      time.Duration
	Timeout time.Duration
}

func (e *SeekTimeoutError) Error() string {
	return fmt.Sprintf("seek to %s did not complete within %s", e.At, e.Timeout)
}

func (e *SeekTimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}
