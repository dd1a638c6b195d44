package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnOrdersByPriority(t *testing.T) {
	bus := New()
	var order []int

	bus.On("x", 5, func(Payload) { order = append(order, 5) })
	bus.On("x", 1, func(Payload) { order = append(order, 1) })
	bus.On("x", 3, func(Payload) { order = append(order, 3) })

	bus.Emit("x", nil)
	assert.Equal(t, []int{1, 3, 5}, order)
}

func TestOnceFiresExactlyOnce(t *testing.T) {
	bus := New()
	n := 0
	bus.Once("x", 0, func(Payload) { n++ })

	bus.Emit("x", nil)
	bus.Emit("x", nil)
	assert.Equal(t, 1, n)
}

func TestCancelRemovesListener(t *testing.T) {
	bus := New()
	n := 0
	sub := bus.On("x", 0, func(Payload) { n++ })
	sub.Cancel()
	bus.Emit("x", nil)
	assert.Equal(t, 0, n)
}

func TestAwaitFiltersByPredicate(t *testing.T) {
	bus := New()
	var got int
	bus.Await("addr", 0, func(p Payload) bool { return p.(int) == 42 }, func(p Payload) {
		got = p.(int)
	})

	bus.Emit("addr", 1)
	assert.Equal(t, 0, got)
	bus.Emit("addr", 42)
	assert.Equal(t, 42, got)

	// already resolved -- further emits must not re-trigger
	got = 0
	bus.Emit("addr", 42)
	assert.Equal(t, 0, got)
}

func TestReentrantEmitIsQueuedNotInterleaved(t *testing.T) {
	bus := New()
	var order []string

	bus.On("a", 0, func(Payload) {
		order = append(order, "a-start")
		bus.Emit("b", nil)
		order = append(order, "a-end")
	})
	bus.On("b", 0, func(Payload) {
		order = append(order, "b")
	})

	bus.Emit("a", nil)
	assert.Equal(t, []string{"a-start", "a-end", "b"}, order)
}

func TestEmitAwaitDeliversSynchronousResponse(t *testing.T) {
	bus := New()
	// a handler on the request that synchronously replies
	bus.On("req", 0, func(p Payload) {
		bus.Emit("resp", p)
	})

	var got Payload
	bus.EmitAwait("req", "ping", "resp", nil, func(p Payload) { got = p })
	assert.Equal(t, "ping", got)
}
