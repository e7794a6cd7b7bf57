// Package emulator provides an in-memory stand-in for a real
// instrument: an authoritative value store over a node registry with
// get/set, wildcard expansion, and concurrent subscription fan-out.
//
// It is used to test client behavior without hardware, and doubles as
// the reference implementation of the data plane's server-side
// semantics.
package emulator

import (
	"sync"
	"time"

	"github.com/creachadair/mds/value"
	"github.com/creachadair/taskgroup"
	"github.com/halverson/nodewire"
)

// A Handle is an opaque delivery target for value updates on a
// subscribed path. Deliver is called once per update; it may be
// called concurrently with deliveries to other handles.
type Handle interface {
	Deliver(nodewire.AnnotatedValue) error
}

// An Emulator is an in-memory authoritative store of node values.
//
// Each registered path is either unset (never written, reads return
// [nodewire.Empty]) or holds the last value written to it. Set calls
// on the same emulator are serialized; subscriber delivery within one
// Set call is concurrent, and Set returns only after every delivery
// attempt for that call has finished.
type Emulator struct {
	reg  *nodewire.Registry
	tree *nodewire.Tree

	// setMu serializes mutations end to end, including fan-out, so
	// subscribers observe updates to one path in write order.
	setMu sync.Mutex

	mu     sync.Mutex
	memory map[nodewire.NodePath]stored
	subs   map[nodewire.NodePath][]Handle
	lastTS uint64

	start time.Time
	now   func() uint64 // override for tests
}

type stored struct {
	value  nodewire.Value
	header value.Maybe[nodewire.ExtraHeader]
}

// New creates an emulator over the given registry. aliases redirects
// source paths to canonical targets before lookups; it may be nil.
func New(reg *nodewire.Registry, aliases map[nodewire.NodePath]nodewire.NodePath) *Emulator {
	e := &Emulator{
		reg:    reg,
		tree:   nodewire.NewTree(reg, aliases),
		memory: make(map[nodewire.NodePath]stored),
		subs:   make(map[nodewire.NodePath][]Handle),
		start:  time.Now(),
	}
	e.now = e.monotonicMicros
	return e
}

func (e *Emulator) monotonicMicros() uint64 {
	return uint64(time.Since(e.start).Microseconds())
}

// timestamp returns a fresh, strictly increasing device timestamp.
// Callers must hold e.mu.
func (e *Emulator) timestamp() uint64 {
	ts := e.now()
	if ts <= e.lastTS {
		ts = e.lastTS + 1
	}
	e.lastTS = ts
	return ts
}

// Tree returns a navigable tree over the emulator's registry.
func (e *Emulator) Tree() *nodewire.Tree { return e.tree }

// Registry returns the emulator's registry.
func (e *Emulator) Registry() *nodewire.Registry { return e.reg }

func (e *Emulator) checkPath(path nodewire.NodePath) (nodewire.NodePath, error) {
	path = e.tree.Redirect(path)
	if !e.reg.Has(path) {
		return "", nodewire.InvalidPathError{
			Path:   path,
			Reason: "not a registered node",
		}
	}
	return path, nil
}

// Get returns the current value of a registered node, annotated with
// a freshly generated timestamp. A node that was never written
// returns [nodewire.Empty]. Timestamps are assigned at read time, not
// stored from the last write.
func (e *Emulator) Get(path nodewire.NodePath) (nodewire.AnnotatedValue, error) {
	path, err := e.checkPath(path)
	if err != nil {
		return nodewire.AnnotatedValue{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.memory[path]
	if !ok {
		st = stored{value: nodewire.Empty{}, header: value.Absent[nodewire.ExtraHeader]()}
	}
	return nodewire.AnnotatedValue{
		Value:       st.value,
		Path:        path,
		Timestamp:   value.Just(e.timestamp()),
		ExtraHeader: st.header,
	}, nil
}

// Set overwrites the stored value of a registered node, stamps a
// fresh timestamp, and delivers the update to every subscriber of
// that exact path concurrently. Set returns after all deliveries for
// this call have completed. If deliveries fail, the state mutation is
// not rolled back, and the first failure is returned after every
// delivery has been attempted.
func (e *Emulator) Set(av nodewire.AnnotatedValue) (nodewire.AnnotatedValue, error) {
	path, err := e.checkPath(av.Path)
	if err != nil {
		return nodewire.AnnotatedValue{}, err
	}

	e.setMu.Lock()
	defer e.setMu.Unlock()

	e.mu.Lock()
	e.memory[path] = stored{value: av.Value, header: av.ExtraHeader}
	update := nodewire.AnnotatedValue{
		Value:       av.Value,
		Path:        path,
		Timestamp:   value.Just(e.timestamp()),
		ExtraHeader: av.ExtraHeader,
	}
	handles := make([]Handle, len(e.subs[path]))
	copy(handles, e.subs[path])
	e.mu.Unlock()

	// One delivery task per subscriber, then join on all of them.
	// Every handle is offered the update before Set returns, even if
	// some deliveries fail; the first failure is reported.
	g := taskgroup.New(nil)
	for _, h := range handles {
		g.Go(func() error { return h.Deliver(update) })
	}
	return update, g.Wait()
}

// GetWithExpression resolves a path expression against the registry
// and performs one Get per match, in registry order. An expression
// matching zero paths returns an empty list.
func (e *Emulator) GetWithExpression(expr nodewire.NodePath) ([]nodewire.AnnotatedValue, error) {
	var ret []nodewire.AnnotatedValue
	for _, p := range e.resolve(expr) {
		av, err := e.Get(p)
		if err != nil {
			return ret, err
		}
		ret = append(ret, av)
	}
	return ret, nil
}

// SetWithExpression resolves the value's path expression and performs
// one Set per match, in registry order. An expression matching zero
// paths is not an error and returns an empty list. On the first
// failure the results so far are returned with the error.
func (e *Emulator) SetWithExpression(av nodewire.AnnotatedValue) ([]nodewire.AnnotatedValue, error) {
	var ret []nodewire.AnnotatedValue
	for _, p := range e.resolve(av.Path) {
		ack, err := e.Set(nodewire.AnnotatedValue{
			Value:       av.Value,
			Path:        p,
			ExtraHeader: av.ExtraHeader,
		})
		if err != nil {
			return ret, err
		}
		ret = append(ret, ack)
	}
	return ret, nil
}

// Subscribe registers handle for delivery on every future Set of the
// exact path. Multiple handles per path are allowed and all are
// notified. There is no implicit unsubscription; closing a [Queue]
// makes its deliveries fail but does not remove it.
func (e *Emulator) Subscribe(path nodewire.NodePath, handle Handle) error {
	path, err := e.checkPath(path)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs[path] = append(e.subs[path], handle)
	return nil
}

// ListNodes returns the registered paths matched by the expression,
// in registry order. An empty expression lists all paths.
func (e *Emulator) ListNodes(expr nodewire.NodePath) []nodewire.NodePath {
	if expr == "" {
		return e.reg.Paths()
	}
	return e.resolve(expr)
}

// ListNodesInfo returns the matched paths with their declared
// metadata. An empty expression lists all paths.
func (e *Emulator) ListNodesInfo(expr nodewire.NodePath) map[nodewire.NodePath]nodewire.NodeInfo {
	ret := make(map[nodewire.NodePath]nodewire.NodeInfo)
	for _, p := range e.ListNodes(expr) {
		if inf, ok := e.reg.Info(p); ok {
			ret[p] = inf
		}
	}
	return ret
}

func (e *Emulator) resolve(expr nodewire.NodePath) []nodewire.NodePath {
	return e.reg.Match(e.tree.Redirect(expr))
}
