package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sixoheight/six09/cpu"
	"github.com/sixoheight/six09/disasm"
	"github.com/sixoheight/six09/event"
	"github.com/sixoheight/six09/mem"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "six09",
		Short: "six09 — a cycle-accurate MC6809 simulator",
	}

	var loadAddr uint16
	var cycles int
	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run [hex bytes]",
		Short: "Load a hex byte string at an address, clock N cycles, print registers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := parseHex(args[0])
			if err != nil {
				return err
			}

			bus := event.New()
			mb := mem.New(bus, 0)
			mb.Load(program, loadAddr)

			cfg := cpu.DefaultConfig()
			mb.RAM[0xFFFE] = byte(loadAddr >> 8)
			mb.RAM[0xFFFF] = byte(loadAddr)

			c, err := cpu.New(bus, cfg)
			if err != nil {
				return err
			}
			if verbose {
				setLogEnable(true)
				bus.On(cpu.EventInstructionFinish, 200, func(p event.Payload) {
					trace(fmt.Sprintf("finished %v", p))
				})
			}

			for i := 0; i < cycles && !c.Failed(); i++ {
				c.PerformCycle()
			}

			s := c.Snapshot()
			fmt.Printf("PC=%04X D=%04X X=%04X Y=%04X U=%04X S=%04X DP=%02X CC=%02X\n",
				s.PC, s.D, s.X, s.Y, s.U, s.S, s.DP, s.CC)
			if c.Failed() {
				return fmt.Errorf("cpu entered fail state (%s)", c.State())
			}
			return nil
		},
	}
	runCmd.Flags().Uint16Var(&loadAddr, "addr", 0x0000, "load address")
	runCmd.Flags().IntVar(&cycles, "cycles", 100, "number of bus cycles to clock")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace each finished instruction")

	var disasmAddr uint16
	var disasmLen int

	disasmCmd := &cobra.Command{
		Use:   "disasm [hex bytes]",
		Short: "Print a disassembly listing of a byte range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := parseHex(args[0])
			if err != nil {
				return err
			}
			var ram [64 * 1024]byte
			copy(ram[int(disasmAddr):], program)
			read := func(a uint16) byte { return ram[a] }

			end := disasmAddr + uint16(len(program)) - 1
			if disasmLen > 0 {
				end = disasmAddr + uint16(disasmLen) - 1
			}
			for _, line := range disasm.Listing(read, disasmAddr, end, disasm.DefaultFormatter()) {
				fmt.Println(line)
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint16Var(&disasmAddr, "addr", 0x0000, "start address")
	disasmCmd.Flags().IntVar(&disasmLen, "len", 0, "number of bytes to disassemble (0 = all given bytes)")

	var debugAddr uint16
	var breakAt uint16

	debugCmd := &cobra.Command{
		Use:   "debug [hex bytes]",
		Short: "Launch the interactive TUI debugger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := parseHex(args[0])
			if err != nil {
				return err
			}
			bus := event.New()
			mb := mem.New(bus, 0)
			cfg := cpu.DefaultConfig()
			mb.RAM[0xFFFE] = byte(debugAddr >> 8)
			mb.RAM[0xFFFF] = byte(debugAddr)
			c, err := cpu.New(bus, cfg)
			if err != nil {
				return err
			}
			return cpu.Debug(c, mb, program, debugAddr, breakAt)
		},
	}
	debugCmd.Flags().Uint16Var(&debugAddr, "addr", 0x0000, "load address")
	debugCmd.Flags().Uint16Var(&breakAt, "break", 0, "run-until PC (0 = none)")

	setLogger(stdoutLogger{})

	rootCmd.AddCommand(runCmd, disasmCmd, debugCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseHex accepts a whitespace-tolerant hex byte string, e.g. "86 01 97 10".
func parseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("hex string must have an even number of digits")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}
