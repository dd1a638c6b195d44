// Package event implements the typed, prioritised publish/subscribe
// transceiver the CPU core uses to exchange data with its external
// collaborators (memory, interrupt sources, debuggers).
//
// The dispatch model is single-threaded and cooperative, the same contract
// the teacher's bubbletea "Msg in, Cmd out" loop follows
// (hejops-gone/cpu/debugger.go): one event is fully drained -- every
// matching listener runs in ascending sub-priority order -- before control
// returns to the caller of Emit. Events published while a dispatch is in
// flight (a handler that itself calls Emit) are queued and drained
// afterwards, in FIFO order, rather than interleaved with the in-progress
// dispatch. No corpus example wires a dedicated pub/sub library for this;
// the teacher's own Bus (hejops-gone/mem/bus.go) is a single fixed listener
// called directly, so this transceiver is original, stdlib-only, plumbing
// built for the CPU core rather than adopted from the pack (see DESIGN.md).
package event

import "sort"

// Name identifies an event kind, e.g. "memory:read" or "cpu:fail".
type Name string

// Payload carries an event's arguments. Each event in the cpu package
// documents the concrete type it publishes; listeners type-assert it.
type Payload any

// Handler is a listener callback. It receives the event's payload.
type Handler func(Payload)

// Subscription is returned by On/Once and can be used to cancel a listener.
type Subscription struct {
	bus      *Transceiver
	name     Name
	id       uint64
	priority int
}

// Cancel removes the listener. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.remove(s.name, s.id)
}

type listener struct {
	id       uint64
	priority int
	once     bool
	fn       Handler
}

// Transceiver is a single-threaded event bus keyed by event Name.
type Transceiver struct {
	listeners map[Name][]listener
	nextID    uint64

	dispatching bool
	queue       []queuedEmit
}

type queuedEmit struct {
	name    Name
	payload Payload
}

// New returns an empty Transceiver.
func New() *Transceiver {
	return &Transceiver{listeners: make(map[Name][]listener)}
}

// On registers a permanent listener for name at the given sub-priority.
// Listeners with a lower priority value run first within the same event.
func (t *Transceiver) On(name Name, priority int, fn Handler) Subscription {
	return t.add(name, priority, false, fn)
}

// Once registers a listener that fires exactly once, then removes itself.
func (t *Transceiver) Once(name Name, priority int, fn Handler) Subscription {
	return t.add(name, priority, true, fn)
}

// Await registers a one-shot listener for name that only resolves when
// pred(payload) is true; pred may be nil to match any payload. fn runs at
// most once. This is the synchronous stand-in for "await the next matching
// instance of an event" (spec §4.1): because dispatch never suspends, the
// caller supplies fn as the continuation instead of blocking on a channel.
func (t *Transceiver) Await(name Name, priority int, pred func(Payload) bool, fn Handler) Subscription {
	var sub Subscription
	wrapped := func(p Payload) {
		if pred != nil && !pred(p) {
			return
		}
		sub.Cancel()
		fn(p)
	}
	sub = t.add(name, priority, false, wrapped)
	return sub
}

func (t *Transceiver) add(name Name, priority int, once bool, fn Handler) Subscription {
	t.nextID++
	id := t.nextID
	l := listener{id: id, priority: priority, once: once, fn: fn}
	ls := append(t.listeners[name], l)
	sort.SliceStable(ls, func(i, j int) bool { return ls[i].priority < ls[j].priority })
	t.listeners[name] = ls
	return Subscription{bus: t, name: name, id: id, priority: priority}
}

func (t *Transceiver) remove(name Name, id uint64) {
	ls := t.listeners[name]
	for i, l := range ls {
		if l.id == id {
			t.listeners[name] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

// Emit dispatches payload to every listener registered for name, in
// ascending priority order, then removes any one-shot listeners that fired.
// If Emit is called re-entrantly (from within a handler), the nested emit
// is queued and drained once the outer dispatch completes.
func (t *Transceiver) Emit(name Name, payload Payload) {
	if t.dispatching {
		t.queue = append(t.queue, queuedEmit{name: name, payload: payload})
		return
	}

	t.dispatching = true
	t.dispatchOne(name, payload)
	t.dispatching = false

	for len(t.queue) > 0 {
		next := t.queue[0]
		t.queue = t.queue[1:]
		t.dispatching = true
		t.dispatchOne(next.name, next.payload)
		t.dispatching = false
	}
}

func (t *Transceiver) dispatchOne(name Name, payload Payload) {
	// Copy the slice: a handler may subscribe/cancel listeners for this
	// same event while it runs, and must not perturb the in-flight pass.
	ls := append([]listener(nil), t.listeners[name]...)
	var fired []uint64
	for _, l := range ls {
		l.fn(payload)
		if l.once {
			fired = append(fired, l.id)
		}
	}
	for _, id := range fired {
		t.remove(name, id)
	}
}

// EmitAwait registers a one-shot listener for response, then emits name
// with payload, invoking fn when the response arrives (optionally filtered
// by pred); a response emitted synchronously during the emit is caught. Models the "emit then await a matching response" idiom (spec
// §4.1) used by the CPU's customfn escape hatch: cpu:function is emitted,
// and cpu:function:result is awaited.
func (t *Transceiver) EmitAwait(name Name, payload Payload, response Name, pred func(Payload) bool, fn Handler) Subscription {
	sub := t.Await(response, 0, pred, fn)
	t.Emit(name, payload)
	return sub
}
