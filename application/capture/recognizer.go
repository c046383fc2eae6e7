// Package capture drives a platform speech-recognition facility and
// accumulates a transcript plus elapsed recording duration. The
// recognizer itself is platform-bound and sits behind a capability
// interface so headless environments can inject a fake.
package capture

import (
	"context"

	apperrors "voicenotes-backend/pkg/errors"
)

// Result is one recognition event. Only final segments make it into
// the accumulated transcript; interim hypotheses are discarded.
type Result struct {
	Transcript string
	IsFinal    bool
}

// Recognizer is the capability interface over a continuous
// speech-recognition engine.
type Recognizer interface {
	// Start begins recognition. It returns an error when the
	// platform offers no speech recognition.
	Start(ctx context.Context) error
	// Stop ends recognition; the Results channel is closed after the
	// last pending event.
	Stop() error
	// Results delivers recognition events.
	Results() <-chan Result
	// Errors delivers recognition failures (microphone denied,
	// network loss in the engine, ...).
	Errors() <-chan error
}

// ErrUnsupported is reported when no speech-recognition capability is
// available; capture must surface this rather than silently no-op.
var ErrUnsupported = apperrors.NewUnavailableError("speech recognition is not supported in this environment")

// unsupportedRecognizer reports ErrUnsupported on Start.
type unsupportedRecognizer struct {
	results chan Result
	errs    chan error
}

// Unsupported returns the recognizer variant for platforms without a
// speech-recognition facility.
func Unsupported() Recognizer {
	return &unsupportedRecognizer{
		results: make(chan Result),
		errs:    make(chan error),
	}
}

func (u *unsupportedRecognizer) Start(ctx context.Context) error {
	return ErrUnsupported
}

func (u *unsupportedRecognizer) Stop() error {
	return nil
}

func (u *unsupportedRecognizer) Results() <-chan Result {
	return u.results
}

func (u *unsupportedRecognizer) Errors() <-chan error {
	return u.errs
}
