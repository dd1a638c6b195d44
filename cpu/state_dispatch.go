package cpu

// stateHandlers pairs a state's start and end functions (spec §4.4): start
// runs once on entry and either begins a bus transaction (returning false,
// "wait for it") or resolves immediately with nothing to wait for
// (returning true, "run end right away"); end runs once a resident
// transaction completes (or, for tick-counted states with no transaction,
// once per cycle) and returns the next state to transition to, or nil to
// remain resident.
type stateHandlers struct {
	start func(c *CPU) bool
	end   func(c *CPU) nextState
}

var dispatch map[stateID]stateHandlers

// init fills dispatch; a package-level initializer would form an
// initialization cycle, since handlers reach dispatch through enterState.
func init() {
	dispatch = map[stateID]stateHandlers{
		stateResetting:       {startResetting, endResetting},
		stateFetch:           {startFetch, endFetch},
		stateImmediate:       {startImmediate, endImmediate},
		stateDirect:          {startDirect, endDirect},
		stateExtended:        {startExtended, endExtended},
		stateRelative:        {startRelative, endRelative},
		stateIndexedPostbyte: {startIndexedPostbyte, endIndexedPostbyte},
		stateIndexedMain:     {startIndexedMain, endIndexedMain},
		stateIndexedIndirect: {startIndexedIndirect, endIndexedIndirect},
		stateExecute:         {startExecute, endExecute},
		stateIRQNMI:          {startIRQNMI, endIRQNMI},
		stateFIRQ:            {startFIRQ, endFIRQ},
		stateCustomFn:        {startCustomFn, endCustomFn},
	}
}

// runStart dispatches to the current state's start handler.
func (c *CPU) runStart() bool {
	h, ok := dispatch[c.state]
	if !ok {
		c.failDump(FailMissingHandler, "no handler for state "+c.state.String(), c.ctx)
		return false
	}
	return h.start(c)
}

// runEnd dispatches to the current state's end handler.
func (c *CPU) runEnd() nextState {
	h, ok := dispatch[c.state]
	if !ok {
		c.failDump(FailMissingHandler, "no handler for state "+c.state.String(), c.ctx)
		return nil
	}
	return h.end(c)
}

// advance runs the current state's end handler and, on transition, enters
// the next state.
func (c *CPU) advance() {
	next := c.runEnd()
	if next != nil {
		c.enterState(*next)
	}
}

// enterState transitions into s, running its start handler; a start that
// completes with nothing to wait for (an "immediate" transition, spec
// §4.4) causes its end handler to run within the same PerformCycle call.
func (c *CPU) enterState(s stateID) {
	c.state = s
	if c.failed {
		return
	}
	if c.runStart() {
		c.advance()
	}
}
