package access

import (
	"context"
	"sync"

	apperrors "voicenotes-backend/pkg/errors"
)

// StorageKey is the single client-side key holding the verification
// flag.
const StorageKey = "voicenote_access_verified"

// State is the gate's client state.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Store abstracts the client-side key/value storage the verification
// flag lives in (localStorage in a browser, anything in tests).
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Checker submits an access code for verification. Implementations
// call the verify endpoint, or wrap a Verifier directly when running
// in-process.
type Checker interface {
	Check(ctx context.Context, code string) (bool, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, code string) (bool, error)

// Check implements Checker.
func (f CheckerFunc) Check(ctx context.Context, code string) (bool, error) {
	return f(ctx, code)
}

// ErrInvalidCode is returned by Authenticate when the code is refused.
var ErrInvalidCode = apperrors.NewUnauthorizedError("Invalid access code")

// Session is the gate's client state machine: loading until Load
// resolves the stored flag, then cycling between unauthenticated and
// authenticated. There is no terminal state.
type Session struct {
	mu      sync.Mutex
	codec   *TokenCodec
	store   Store
	checker Checker
	state   State
}

// NewSession creates a session in the loading state.
func NewSession(codec *TokenCodec, store Store, checker Checker) *Session {
	return &Session{
		codec:   codec,
		store:   store,
		checker: checker,
		state:   StateLoading,
	}
}

// State returns the current gate state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load resolves the stored verification. An absent, malformed, badly
// signed or expired flag is discarded and leaves the session
// unauthenticated; a valid one authenticates without a round trip.
func (s *Session) Load() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.store.Get(StorageKey)
	if !ok {
		s.state = StateUnauthenticated
		return s.state
	}

	if _, valid := s.codec.Parse(raw); !valid {
		s.store.Delete(StorageKey)
		s.state = StateUnauthenticated
		return s.state
	}

	s.state = StateAuthenticated
	return s.state
}

// Authenticate submits the code. Success writes a fresh signed flag
// and transitions to authenticated; a refused code returns
// ErrInvalidCode and stays unauthenticated.
func (s *Session) Authenticate(ctx context.Context, code string) error {
	ok, err := s.checker.Check(ctx, code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok {
		s.state = StateUnauthenticated
		return ErrInvalidCode
	}

	token, err := s.codec.Sign()
	if err != nil {
		s.state = StateUnauthenticated
		return apperrors.NewInternalError("failed to sign verification").WithCause(err)
	}

	s.store.Set(StorageKey, token)
	s.state = StateAuthenticated
	return nil
}

// Logout clears the flag and reports unauthenticated. Callers are
// expected to drop all cached in-memory state afterwards (the browser
// shell does a full reload).
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Delete(StorageKey)
	s.state = StateUnauthenticated
}
