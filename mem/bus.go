// Package mem provides a flat 64 kB RAM collaborator that answers the CPU
// core's memory:read / memory:write events over an event.Transceiver.
//
// The teacher's Bus (hejops-gone/mem/bus.go) exposed a single global 64 kB
// array reached by direct Read/Write calls from the CPU. The core described
// by spec.md never calls memory directly: it emits memory:read(addr) /
// memory:write(addr, byte) requests and consumes memory:read:result /
// memory:write:result events (spec §6), so a Bus here is just one possible
// collaborator wired to those events -- the same FakeRam array, adapted to
// answer asynchronously over the bus instead of being called synchronously.
package mem

import (
	"github.com/sixoheight/six09/event"
)

// ReadRequest is the memory:read payload: the CPU wants the byte at Addr.
type ReadRequest struct {
	Addr uint16
}

// WriteRequest is the memory:write payload: the CPU wants Data stored at Addr.
type WriteRequest struct {
	Addr uint16
	Data byte
}

// ReadResult is the memory:read:result payload.
type ReadResult struct {
	Addr uint16
	Data byte
}

// WriteResult is the memory:write:result payload.
type WriteResult struct {
	Addr uint16
	Data byte
}

const (
	EventRead        event.Name = "memory:read"
	EventWrite       event.Name = "memory:write"
	EventReadResult  event.Name = "memory:read:result"
	EventWriteResult event.Name = "memory:write:result"
)

// Bus is a flat 64 kB RAM backing store; no bank switching or mirroring, as
// the teacher notes for its own FakeRam ("not meant to be used for now").
type Bus struct {
	RAM [64 * 1024]byte
}

// New attaches a fresh, zeroed Bus to the given Transceiver at the given
// sub-priority and returns it. The Bus answers every memory:read and
// memory:write it sees, synchronously, within the same Emit call --
// reproducing single-cycle RAM with no wait states.
func New(bus *event.Transceiver, priority int) *Bus {
	m := &Bus{}
	bus.On(EventRead, priority, func(p event.Payload) {
		req := p.(ReadRequest)
		bus.Emit(EventReadResult, ReadResult{Addr: req.Addr, Data: m.RAM[req.Addr]})
	})
	bus.On(EventWrite, priority, func(p event.Payload) {
		req := p.(WriteRequest)
		m.RAM[req.Addr] = req.Data
		bus.Emit(EventWriteResult, WriteResult{Addr: req.Addr, Data: req.Data})
	})
	return m
}

// Load copies program into RAM starting at addr, for test and CLI use.
func (m *Bus) Load(program []byte, addr uint16) {
	copy(m.RAM[int(addr):], program)
}
