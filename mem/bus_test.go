package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sixoheight/six09/event"
)

func TestBusAnswersReadAndWrite(t *testing.T) {
	bus := event.New()
	m := New(bus, 0)
	m.RAM[0x1234] = 0xAB

	var got ReadResult
	bus.On(EventReadResult, 0, func(p event.Payload) { got = p.(ReadResult) })
	bus.Emit(EventRead, ReadRequest{Addr: 0x1234})
	assert.Equal(t, byte(0xAB), got.Data)

	var wrote WriteResult
	bus.On(EventWriteResult, 0, func(p event.Payload) { wrote = p.(WriteResult) })
	bus.Emit(EventWrite, WriteRequest{Addr: 0x2000, Data: 0x42})
	assert.Equal(t, byte(0x42), wrote.Data)
	assert.Equal(t, byte(0x42), m.RAM[0x2000])
}

func TestLoad(t *testing.T) {
	bus := event.New()
	m := New(bus, 0)
	m.Load([]byte{0x86, 0x2A}, 0x0100)
	assert.Equal(t, byte(0x86), m.RAM[0x0100])
	assert.Equal(t, byte(0x2A), m.RAM[0x0101])
}
