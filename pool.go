package cvpdf

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps generators, each of which may own a browser.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// GeneratorPool manages Generator instances for parallel generation.
// Generators are created lazily on first acquire with the pool's options.
type GeneratorPool struct {
	size       int
	opts       []Option
	generators []*Generator
	sem        chan *Generator
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewGeneratorPool creates a pool with capacity for n generators built
// with opts. Use WithRendererName rather than WithRenderer so that
// generators do not share a renderer.
func NewGeneratorPool(n int, opts ...Option) *GeneratorPool {
	if n < 1 {
		n = 1
	}

	return &GeneratorPool{
		size:       n,
		opts:       opts,
		generators: make([]*Generator, 0, n),
		sem:        make(chan *Generator, n),
	}
}

// Acquire gets a generator from the pool, creating one if needed.
// Blocks if all generators are in use.
func (p *GeneratorPool) Acquire() (*Generator, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrPoolClosed
	}

	// Try to get an existing generator (non-blocking)
	select {
	case g, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return g, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new generator outside the lock
		g, err := NewGenerator(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.generators = append(p.generators, g)
		p.mu.Unlock()

		return g, nil
	}
	p.mu.Unlock()

	// All generators created, wait for one to be released
	g, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return g, nil
}

// Release returns a generator to the pool.
// The channel holds every generator the pool created, so the send never
// blocks and is safe under the lock that guards Close.
func (p *GeneratorPool) Release(g *Generator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || g == nil {
		return
	}
	p.sem <- g
}

// Close releases all renderer resources.
// Returns an aggregated error if multiple generators fail to close.
func (p *GeneratorPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	for range p.sem {
	}
	generators := p.generators
	p.mu.Unlock()

	var errs []error
	for _, g := range generators {
		if err := g.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *GeneratorPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
