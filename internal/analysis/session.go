package analysis

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by a Session call whose result was overtaken by a
// newer call. The stale result is discarded.
var ErrSuperseded = errors.New("analysis superseded by a newer request")

// AnalyzeFunc performs one analysis.
type AnalyzeFunc func(ctx context.Context) (*Result, error)

// Session sequences analyses for one user. Every call takes a ticket; only
// the holder of the newest ticket may publish its result, and starting a
// call cancels the context of the call it replaces.
type Session struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	latest *Result
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Run executes fn under a new ticket.
func (s *Session) Run(ctx context.Context, fn AnalyzeFunc) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.seq++
	ticket := s.seq
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	res, err := fn(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != ticket {
		return nil, ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		return nil, err
	}
	s.latest = res
	return res, nil
}

// AnalyzePath runs a.AnalyzePath under a new ticket.
func (s *Session) AnalyzePath(ctx context.Context, a *Analyzer, path string) (*Result, error) {
	return s.Run(ctx, func(ctx context.Context) (*Result, error) {
		return a.AnalyzePath(ctx, path)
	})
}

// Latest returns the most recent published result, or nil.
func (s *Session) Latest() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
