package capture

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the capture lifecycle state.
type State int

const (
	StateIdle State = iota
	StateListening
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// tickFactory returns a tick channel plus its stop function. Tests
// inject a manual channel to drive the duration counter.
type tickFactory func() (<-chan time.Time, func())

func secondTicker() (<-chan time.Time, func()) {
	t := time.NewTicker(time.Second)
	return t.C, t.Stop
}

// Capture accumulates finalized transcript segments and elapsed
// seconds for one recording session.
type Capture struct {
	recognizer Recognizer
	logger     *zap.Logger
	newTicker  tickFactory

	mu         sync.Mutex
	state      State
	transcript strings.Builder
	duration   int
	errMsg     string
	sessionID  string

	stopTick func()
	done     chan struct{}
	wg       sync.WaitGroup
}

// Option configures a Capture.
type Option func(*Capture)

// WithTicker replaces the 1-second ticker, for deterministic tests.
func WithTicker(factory func() (<-chan time.Time, func())) Option {
	return func(c *Capture) {
		c.newTicker = factory
	}
}

// New creates an idle capture over the given recognizer.
func New(recognizer Recognizer, logger *zap.Logger, opts ...Option) *Capture {
	c := &Capture{
		recognizer: recognizer,
		logger:     logger,
		newTicker:  secondTicker,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start clears any prior transcript and duration, starts the elapsed
// counter and transitions to listening. A recognizer that cannot
// start (unsupported platform, denied microphone) surfaces its error
// and leaves the capture idle.
func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateListening {
		c.mu.Unlock()
		return nil
	}
	c.transcript.Reset()
	c.duration = 0
	c.errMsg = ""
	c.sessionID = uuid.New().String()
	c.mu.Unlock()

	if err := c.recognizer.Start(ctx); err != nil {
		c.mu.Lock()
		c.errMsg = err.Error()
		c.mu.Unlock()
		return err
	}

	tick, stopTick := c.newTicker()

	c.mu.Lock()
	c.state = StateListening
	c.stopTick = stopTick
	c.done = make(chan struct{})
	c.mu.Unlock()

	c.logger.Info("Recording started", zap.String("session", c.sessionID))

	c.wg.Add(1)
	go c.consume(tick)
	return nil
}

func (c *Capture) consume(tick <-chan time.Time) {
	defer c.wg.Done()
	for {
		select {
		case result, ok := <-c.recognizer.Results():
			if !ok {
				return
			}
			if !result.IsFinal {
				continue
			}
			c.mu.Lock()
			c.transcript.WriteString(result.Transcript)
			c.mu.Unlock()
		case err, ok := <-c.recognizer.Errors():
			if !ok {
				return
			}
			c.mu.Lock()
			c.errMsg = "Speech recognition error: " + err.Error()
			c.state = StateStopped
			if c.stopTick != nil {
				c.stopTick()
				c.stopTick = nil
			}
			c.mu.Unlock()
			c.logger.Warn("Recognition error", zap.Error(err))
			return
		case <-tick:
			c.mu.Lock()
			if c.state == StateListening {
				c.duration++
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}

// Stop ends the session and hands the accumulated transcript and
// duration to the caller for the processing phase.
func (c *Capture) Stop() (transcript string, seconds int) {
	c.mu.Lock()
	if c.state != StateListening {
		transcript, seconds = c.transcript.String(), c.duration
		c.mu.Unlock()
		return transcript, seconds
	}
	c.state = StateStopped
	if c.stopTick != nil {
		c.stopTick()
		c.stopTick = nil
	}
	done := c.done
	c.mu.Unlock()

	if err := c.recognizer.Stop(); err != nil {
		c.logger.Warn("Recognizer stop failed", zap.Error(err))
	}
	close(done)
	c.wg.Wait()

	c.mu.Lock()
	transcript, seconds = c.transcript.String(), c.duration
	c.mu.Unlock()

	c.logger.Info("Recording stopped",
		zap.String("session", c.sessionID),
		zap.Int("seconds", seconds),
	)
	return transcript, seconds
}

// State returns the current capture state.
func (c *Capture) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Transcript returns the transcript accumulated so far.
func (c *Capture) Transcript() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.String()
}

// Duration returns elapsed recording seconds.
func (c *Capture) Duration() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// Err returns the user-visible error string, empty when none.
func (c *Capture) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}
