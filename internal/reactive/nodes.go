package reactive

import (
	"fmt"
	"reflect"
)

// Input is a settable source value.
type Input[T any] struct {
	n     *node
	value T
	equal func(a, b T) bool
}

// InputOption configures an Input.
type InputOption[T any] func(*Input[T])

// WithEqual replaces the equality used to suppress no-op updates.
func WithEqual[T any](eq func(a, b T) bool) InputOption[T] {
	return func(in *Input[T]) { in.equal = eq }
}

func NewInput[T any](g *Graph, name string, initial T, opts ...InputOption[T]) *Input[T] {
	in := &Input[T]{
		n:     g.add(name, KindInput),
		value: initial,
		equal: func(a, b T) bool { return reflect.DeepEqual(a, b) },
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (in *Input[T]) Name() string { return in.n.name }

// Get returns the value and registers a dependency when called from a
// computed or effect.
func (in *Input[T]) Get() T {
	in.n.graph.track(in.n)
	return in.value
}

// Peek returns the value without registering a dependency.
func (in *Input[T]) Peek() T {
	return in.value
}

// Set stores v and propagates the change. It reports whether the value
// changed; equal values are ignored.
func (in *Input[T]) Set(v T) bool {
	if in.equal(in.value, v) {
		return false
	}
	in.value = v
	in.n.runs++
	g := in.n.graph
	g.invalidate(in.n)
	g.maybeFlush()
	return true
}

// Update applies fn to the current value and sets the result.
func (in *Input[T]) Update(fn func(T) T) bool {
	return in.Set(fn(in.value))
}

// Computed is a lazily evaluated, cached derived value.
type Computed[T any] struct {
	n     *node
	fn    func() T
	value T
}

func NewComputed[T any](g *Graph, name string, fn func() T) *Computed[T] {
	c := &Computed[T]{n: g.add(name, KindComputed), fn: fn}
	c.n.stale = true
	return c
}

func (c *Computed[T]) Name() string { return c.n.name }

// Get returns the cached value, recomputing it first if any source changed
// since the last evaluation.
func (c *Computed[T]) Get() T {
	g := c.n.graph
	if c.n.running {
		panic(fmt.Sprintf("reactive: cycle detected at %s %q", c.n.kind, c.n.name))
	}
	g.track(c.n)
	if c.n.stale {
		g.evaluate(c.n, func() {
			// Cleared up front so a source changing mid-evaluation marks it
			// stale again.
			c.n.stale = false
			done := false
			defer func() {
				if !done {
					c.n.stale = true
				}
			}()
			c.value = c.fn()
			done = true
		})
	}
	return c.value
}

// Runs reports how many times the value has been computed.
func (c *Computed[T]) Runs() int { return c.n.runs }

// Effect re-runs a side-effecting function whenever anything it read changes.
type Effect struct {
	n *node
}

// NewEffect registers fn and runs it immediately to discover its sources.
func NewEffect(g *Graph, name string, fn func()) *Effect {
	e := &Effect{n: g.add(name, KindEffect)}
	e.n.run = func() { g.evaluate(e.n, fn) }
	e.n.run()
	return e
}

func (e *Effect) Name() string { return e.n.name }

// Runs reports how many times the effect has executed.
func (e *Effect) Runs() int { return e.n.runs }

// Dispose detaches the effect; it will not run again.
func (e *Effect) Dispose() {
	if e.n.disposed {
		return
	}
	e.n.disposed = true
	e.n.queued = false
	for src := range e.n.sources {
		delete(src.sinks, e.n)
	}
	clear(e.n.sources)
}
