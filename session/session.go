package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/uasat/shell/errors"
)

// Caller is the loaded computation handle: one operation, polymorphic over
// any input string, returning a string. Its success and failure semantics
// are the library's concern, not the shell's.
type Caller interface {
	Call(ctx context.Context, input string) (string, error)
}

// Result of a single run
type Result struct {
	Output  string
	Elapsed time.Duration
}

// Render formats the result the way the shell displays it.
func (r Result) Render() string {
	return fmt.Sprintf("%s\nFinished in %d ms", r.Output, r.Elapsed.Milliseconds())
}

// Session is the process-wide shell state. Safe for concurrent use; the
// interactive shell invokes Run from a deferred command goroutine.
type Session struct {
	mu     sync.Mutex
	caller Caller
	logger *zap.Logger
}

// New creates an empty session. logger may be nil.
func New(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{logger: logger}
}

// Attach stores the loaded handle. The handle is written at most once;
// later calls are ignored.
func (s *Session) Attach(c Caller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.caller != nil {
		s.logger.Debug("attach ignored: handle already present")
		return
	}
	s.caller = c
	s.logger.Info("uasat library attached")
}

// Loaded reports whether the handle is present.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caller != nil
}

// Run invokes the library with the input text and measures wall-clock time.
//
// Before the load completes it returns ErrNotLoaded without attempting an
// invocation. A fault inside the computation is caught and returned rather
// than swallowed; the session state is unchanged either way.
func (s *Session) Run(ctx context.Context, input string) (Result, error) {
	s.mu.Lock()
	c := s.caller
	s.mu.Unlock()

	if c == nil {
		return Result{}, errors.NotLoaded()
	}

	start := time.Now()
	out, err := c.Call(ctx, input)
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Warn("run failed",
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return Result{}, err
	}

	s.logger.Debug("run finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("output_len", len(out)))

	return Result{Output: out, Elapsed: elapsed}, nil
}
