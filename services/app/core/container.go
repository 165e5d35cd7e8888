package core

import "sync"

// Container holds a state value and notifies subscribers after every update.
// Updates must replace slices and maps rather than mutate them, since
// subscribers and State callers share the previous values.
type Container[S any] struct {
	mu     sync.RWMutex
	state  S
	subs   map[uint64]func(S)
	nextID uint64
}

func NewContainer[S any](initial S) *Container[S] {
	return &Container[S]{state: initial, subs: make(map[uint64]func(S))}
}

func (c *Container[S]) State() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Update applies fn under the lock, then notifies subscribers with the
// resulting snapshot.
func (c *Container[S]) Update(fn func(*S)) {
	c.Apply(func(s *S) bool {
		fn(s)
		return true
	})
}

// Apply is Update for changes that may turn out to be no-ops: subscribers
// are only notified when fn reports a change.
func (c *Container[S]) Apply(fn func(*S) bool) bool {
	c.mu.Lock()
	if !fn(&c.state) {
		c.mu.Unlock()
		return false
	}
	snapshot := c.state
	subs := make([]func(S), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s(snapshot)
	}
	return true
}

// Subscribe registers fn and returns a func that removes it.
func (c *Container[S]) Subscribe(fn func(S)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// generations hands out a token per action so that only the most recently
// started call of that action may publish its result.
type generations struct {
	mu   sync.Mutex
	last map[string]uint64
}

func (g *generations) begin(action string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil {
		g.last = make(map[string]uint64)
	}
	g.last[action]++
	return g.last[action]
}

func (g *generations) current(action string, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last[action] == token
}
