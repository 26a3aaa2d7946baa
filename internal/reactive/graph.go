// Package reactive implements a small push-invalidate / pull-recompute
// dependency graph.
//
// Inputs hold values set from outside. Computeds derive values lazily from
// whatever they read while evaluating and cache them until a source changes.
// Effects are observers: they run once on creation and again after any
// source changes. Setting an input first invalidates every transitive
// dependent and only then runs the affected effects, in creation order, so an
// effect never sees a mix of old and new derived values.
//
// A Graph is not safe for concurrent use; callers serialize access (a Bubble
// Tea Update loop or a per-request graph both do).
package reactive

import (
	"fmt"
	"slices"
	"sort"
)

// Kind classifies a node.
type Kind string

const (
	KindInput    Kind = "input"
	KindComputed Kind = "computed"
	KindEffect   Kind = "effect"
)

// maxFlushRounds bounds effect cascades where effects keep setting inputs.
const maxFlushRounds = 100

type node struct {
	graph    *Graph
	id       int
	name     string
	kind     Kind
	sources  map[*node]struct{}
	sinks    map[*node]struct{}
	stale    bool
	queued   bool
	running  bool
	disposed bool
	runs     int
	run      func()
}

// NodeInfo is a read-only description of a node for introspection.
type NodeInfo struct {
	ID      int
	Name    string
	Kind    Kind
	Runs    int
	Stale   bool
	Sources []string
}

// Graph owns a set of nodes and schedules their recomputation.
type Graph struct {
	nodes    []*node
	tracking *node
	queue    []*node
	batch    int
	flushing bool
	onRun    func(NodeInfo)
}

func NewGraph() *Graph {
	return &Graph{}
}

// OnRun installs a hook called after every computed or effect evaluation.
func (g *Graph) OnRun(fn func(NodeInfo)) {
	g.onRun = fn
}

func (g *Graph) add(name string, kind Kind) *node {
	n := &node{
		graph:   g,
		id:      len(g.nodes) + 1,
		name:    name,
		kind:    kind,
		sources: map[*node]struct{}{},
		sinks:   map[*node]struct{}{},
	}
	g.nodes = append(g.nodes, n)
	return n
}

// track records that the node currently evaluating read src.
func (g *Graph) track(src *node) {
	cur := g.tracking
	if cur == nil || cur == src {
		return
	}
	cur.sources[src] = struct{}{}
	src.sinks[cur] = struct{}{}
}

// evaluate runs fn with n as the tracking target, rebuilding n's sources.
// Inputs set while fn runs have their effects flushed once it returns.
func (g *Graph) evaluate(n *node, fn func()) {
	g.runTracked(n, fn)
	g.maybeFlush()
}

func (g *Graph) runTracked(n *node, fn func()) {
	if n.running {
		panic(fmt.Sprintf("reactive: cycle detected at %s %q", n.kind, n.name))
	}
	for src := range n.sources {
		delete(src.sinks, n)
	}
	clear(n.sources)

	prev := g.tracking
	g.tracking = n
	n.running = true
	defer func() {
		n.running = false
		g.tracking = prev
	}()

	fn()
	n.runs++
	if g.onRun != nil {
		g.onRun(n.info())
	}
}

// invalidate marks every transitive dependent of n stale and queues effects.
func (g *Graph) invalidate(n *node) {
	for sink := range n.sinks {
		switch sink.kind {
		case KindComputed:
			if sink.stale {
				continue
			}
			sink.stale = true
			g.invalidate(sink)
		case KindEffect:
			if sink.queued || sink.disposed {
				continue
			}
			sink.queued = true
			g.queue = append(g.queue, sink)
		}
	}
}

// Batch runs fn and defers effects until it returns, so several inputs can
// change with a single downstream run.
func (g *Graph) Batch(fn func()) {
	g.batch++
	func() {
		defer func() { g.batch-- }()
		fn()
	}()
	g.maybeFlush()
}

func (g *Graph) maybeFlush() {
	if g.batch > 0 || g.flushing || g.tracking != nil {
		return
	}
	g.flush()
}

func (g *Graph) flush() {
	g.flushing = true
	defer func() { g.flushing = false }()

	for rounds := 0; len(g.queue) > 0; rounds++ {
		if rounds >= maxFlushRounds {
			names := make([]string, 0, len(g.queue))
			for _, n := range g.queue {
				names = append(names, n.name)
			}
			g.queue = nil
			panic(fmt.Sprintf("reactive: effects did not settle after %d rounds: %v", maxFlushRounds, names))
		}
		pending := g.queue
		g.queue = nil
		sort.Slice(pending, func(i, j int) bool { return pending[i].id < pending[j].id })
		for _, n := range pending {
			if !n.queued {
				continue
			}
			n.queued = false
			if n.disposed {
				continue
			}
			n.run()
		}
	}
}

// Nodes describes the graph in creation order.
func (g *Graph) Nodes() []NodeInfo {
	out := make([]NodeInfo, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n.disposed {
			continue
		}
		out = append(out, n.info())
	}
	return out
}

func (n *node) info() NodeInfo {
	srcs := make([]*node, 0, len(n.sources))
	for s := range n.sources {
		srcs = append(srcs, s)
	}
	slices.SortFunc(srcs, func(a, b *node) int { return a.id - b.id })
	names := make([]string, 0, len(srcs))
	for _, s := range srcs {
		names = append(names, s.name)
	}
	return NodeInfo{
		ID:      n.id,
		Name:    n.name,
		Kind:    n.kind,
		Runs:    n.runs,
		Stale:   n.stale,
		Sources: names,
	}
}
