package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned when acquiring from a closed pool.
var ErrPoolClosed = errors.New("inference: pool is closed")

// Pool holds a fixed set of detector sessions. A pool of size 1 serializes
// inference: each request finishes before the next one starts.
type Pool struct {
	idle   chan *Session
	size   int
	mu     sync.Mutex
	closed bool
}

// NewPool creates a pool of size sessions for modelPath.
func NewPool(modelPath string, size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	pool := &Pool{
		idle: make(chan *Session, size),
		size: size,
	}

	for i := 0; i < size; i++ {
		session, err := NewSession(modelPath)
		if err != nil {
			_ = pool.Close() // Best-effort cleanup; original error takes precedence
			return nil, fmt.Errorf("creating session %d: %w", i, err)
		}
		pool.idle <- session
	}

	return pool, nil
}

// Acquire gets a session from the pool, blocking if none available.
// Respects context cancellation. Returns error if pool is closed.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	select {
	case session, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return session, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a session to the pool.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = s.Close() // Pool closed; clean up session
		return
	}

	select {
	case p.idle <- s:
	default:
		_ = s.Close() // Pool full; clean up excess session
	}
}

// Infer runs one inference on a pooled session.
func (p *Pool) Infer(ctx context.Context, pixels []float32, size int) ([]Detection, error) {
	session, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(session)

	return session.Infer(ctx, pixels, size)
}

// Close closes all idle sessions. Sessions still checked out are closed when
// released.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	p.mu.Unlock()

	var errs []error
	for session := range p.idle {
		if err := session.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Size returns the pool size.
func (p *Pool) Size() int {
	return p.size
}
