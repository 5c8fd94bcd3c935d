package ocr

import "sync"

// Lazy defers engine construction to the first caller that needs it. The
// factory runs at most once; its result, error included, is shared by every
// later caller.
type Lazy struct {
	mu      sync.Mutex
	factory func() (Engine, error)
	eng     Engine
	err     error
	done    bool
}

func NewLazy(factory func() (Engine, error)) *Lazy {
	return &Lazy{factory: factory}
}

func (l *Lazy) Get() (Engine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.done {
		l.eng, l.err = l.factory()
		l.done = true
	}
	return l.eng, l.err
}
