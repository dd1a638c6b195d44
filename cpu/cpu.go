package cpu

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/sixoheight/six09/event"
	"github.com/sixoheight/six09/mem"
)

// Event names on the shared Transceiver (spec §5).
const (
	EventInstructionBegin  event.Name = "cpu:instruction_begin"
	EventInstructionFetch  event.Name = "cpu:instruction_fetched"
	EventInstructionDecode event.Name = "cpu:instruction_decoded"
	EventInstructionFinish event.Name = "cpu:instruction_finish"
	EventResetFinish       event.Name = "cpu:reset_finish"
	EventFail              event.Name = "cpu:fail"
	EventFunction          event.Name = "cpu:function"
	EventFunctionResult    event.Name = "cpu:function:result"

	EventSignalReset event.Name = "signal:reset"
	EventSignalIRQ   event.Name = "signal:irq"
	EventSignalNMI   event.Name = "signal:nmi"
	EventSignalFIRQ  event.Name = "signal:firq"
)

// cpuListenerPriority is used for every subscription the CPU makes to its
// own bus. Lower priorities run first, so a listener at priority 0 sees an
// event before the CPU's own listener does, and one above 100 sees it after
// (spec §5).
const cpuListenerPriority = 100

// FailReason names why the CPU entered its terminal fail state (spec §4.4,
// §7).
type FailReason int

const (
	FailUnknownOpcode FailReason = iota
	FailBadPostbyte
	FailMissingHandler
)

func (f FailReason) String() string {
	switch f {
	case FailUnknownOpcode:
		return "unknown_opcode"
	case FailBadPostbyte:
		return "bad_postbyte"
	case FailMissingHandler:
		return "missing_handler"
	}
	return "?"
}

// Failure is the cpu:fail payload.
type Failure struct {
	Reason FailReason
	PC     uint16
	Detail string
}

// FunctionCall is the cpu:function payload, emitted by the customfn state
// (spec §4.5/§6). Fetch never enters that state, so nothing emits it.
type FunctionCall struct {
	PC   uint16
	Regs Snapshot
}

// FunctionResult is the expected reply payload to cpu:function: the host
// may mutate registers via Regs before handing control back.
type FunctionResult struct {
	Regs Snapshot
}

// CPU is the MC6809 instruction-execution engine (spec §3). It is driven
// one bus cycle at a time by PerformCycle; all communication with memory
// and with the outside world happens over the shared event.Transceiver,
// mirroring how the teacher's Cpu holds a *Bus but, unlike the teacher,
// this core never calls into memory synchronously -- every transfer is a
// request/result pair on the bus (spec §4.2).
type CPU struct {
	bus    *event.Transceiver
	cfg    Config
	regs   *registerProxy
	state  stateID
	ctx    stateContext
	txn    transaction
	opcode uint16
	desc   Descriptor
	addr   Addressing

	lastMnemonic string
	lastBytes    int

	pendingInterrupt stateID
	haveInterrupt    bool
	nmiEntry         bool // pendingInterrupt==stateIRQNMI was latched by NMI, not plain IRQ

	failed bool
}

// New builds a CPU wired to bus, validating cfg and subscribing to the
// signal/result events it needs (spec §3, §6).
func New(bus *event.Transceiver, cfg Config) (*CPU, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	c := &CPU{
		bus:  bus,
		cfg:  cfg,
		regs: newRegisterProxy(bus, cfg.announceSet()),
	}

	bus.On(mem.EventReadResult, cpuListenerPriority, func(p event.Payload) {
		r := p.(mem.ReadResult)
		c.txn.putReadResult(r.Addr, r.Data)
	})
	bus.On(mem.EventWriteResult, cpuListenerPriority, func(p event.Payload) {
		r := p.(mem.WriteResult)
		c.txn.putWriteResult(r.Addr, r.Data)
	})
	bus.On(EventSignalReset, cpuListenerPriority, func(event.Payload) { c.requestReset() })
	bus.On(EventSignalNMI, cpuListenerPriority, func(event.Payload) { c.requestInterrupt(stateIRQNMI, true) })
	bus.On(EventSignalIRQ, cpuListenerPriority, func(event.Payload) { c.requestInterrupt(stateIRQNMI, false) })
	bus.On(EventSignalFIRQ, cpuListenerPriority, func(event.Payload) { c.requestInterrupt(stateFIRQ, false) })

	c.enterState(stateResetting)
	return c, nil
}

// Snapshot returns an immutable copy of the current register file (spec §3).
func (c *CPU) Snapshot() Snapshot {
	s := c.regs.snapshot()
	s.LastMnemonic = c.lastMnemonic
	s.LastBytes = c.lastBytes
	return s
}

// State reports the current pipeline state's name, for debuggers.
func (c *CPU) State() string { return c.state.String() }

// Failed reports whether the CPU has entered its terminal fail state.
func (c *CPU) Failed() bool { return c.failed }

// requestReset forces the CPU into the resetting state immediately, without
// running whatever state was resident's end handler (spec §4.5: reset
// preempts everything).
func (c *CPU) requestReset() {
	c.txn = transaction{}
	c.ctx = stateContext{}
	c.failed = false
	c.haveInterrupt = false
	c.enterState(stateResetting)
}

// requestInterrupt latches a pending interrupt; NMI always wins over FIRQ
// which always wins over IRQ when more than one is pending at the same
// fetch boundary (spec §4.4's stated priority, resolved per spec §9 open
// question: unmasked IRQ/FIRQ requests latch and are serviced at the next
// instruction boundary, not mid-instruction).
func (c *CPU) requestInterrupt(target stateID, nmi bool) {
	if nmi {
		c.pendingInterrupt = stateIRQNMI
		c.nmiEntry = true
		c.haveInterrupt = true
		return
	}
	if c.haveInterrupt && c.pendingInterrupt == stateIRQNMI && c.nmiEntry {
		return // NMI already latched, outranks FIRQ/IRQ
	}
	if target == stateFIRQ && c.regs.Get(RegCC)&ccFIRQMask != 0 {
		return
	}
	if target == stateIRQNMI && c.regs.Get(RegCC)&ccIRQMask != 0 {
		return
	}
	if c.haveInterrupt && c.pendingInterrupt == stateFIRQ {
		return // FIRQ outranks plain IRQ
	}
	c.pendingInterrupt = target
	c.nmiEntry = false
	c.haveInterrupt = true
}

// PerformCycle executes exactly one bus cycle of the state machine,
// implementing the three-step protocol of spec §4.4: if a transaction is
// in flight and unresolved, emit its request and stop; otherwise run the
// current state's end handler, advance ctx/transaction bookkeeping, and
// (on transition) run the new state's start handler, repeating through any
// zero-tick immediate transitions within this same call.
func (c *CPU) PerformCycle() {
	if c.failed {
		return
	}
	if c.txn.active && !c.txn.isDone() {
		c.driveTransaction()
		return
	}
	c.advance()
}

func (c *CPU) driveTransaction() {
	if c.txn.waiting {
		return
	}
	c.txn.waiting = true
	addr := c.txn.nextAddr()
	if c.txn.dir == dirRead {
		c.bus.Emit(mem.EventRead, mem.ReadRequest{Addr: addr})
	} else {
		c.bus.Emit(mem.EventWrite, mem.WriteRequest{Addr: addr, Data: c.txn.data[c.txn.bytesDone]})
	}
}

// beginRead starts a new read transaction for n bytes at addr.
func (c *CPU) beginRead(addr uint16, n int) {
	c.txn = transaction{active: true, addr: addr, bytes: n, dir: dirRead}
}

// beginWrite starts a new write transaction for n bytes at addr, value v
// (MSB first for n==2).
func (c *CPU) beginWrite(addr uint16, n int, v uint32) {
	t := transaction{active: true, addr: addr, bytes: n, dir: dirWrite}
	if n == 1 {
		t.data[0] = byte(v)
	} else {
		t.data[0] = byte(v >> 8)
		t.data[1] = byte(v)
	}
	c.txn = t
}

func (c *CPU) fail(reason FailReason, detail string) {
	c.failed = true
	c.state = stateFail
	c.bus.Emit(EventFail, Failure{Reason: reason, PC: uint16(c.regs.Get(RegPC)), Detail: detail})
}

func (c *CPU) failf(reason FailReason, format string, args ...any) {
	c.fail(reason, fmt.Sprintf(format, args...))
}

// failDump is used where there's no concise format string worth writing --
// a dispatch table miss has nothing more specific to say than "this state
// has no handler" -- so the in-flight addressing/ctx data is dumped instead
// of formatted by hand.
func (c *CPU) failDump(reason FailReason, prefix string, v any) {
	c.fail(reason, prefix+": "+spew.Sdump(v))
}
