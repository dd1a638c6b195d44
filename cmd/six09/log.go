package main

import "fmt"

// Logger is the host-side tracing hook a caller can wire in to observe
// finished instructions without the core depending on any logging package
// itself (grounded on master-g-childhood/go/mgnes/log.go's SetLogger/
// SetLogEnable pair).
type Logger interface {
	Log(msg string)
}

type stdoutLogger struct{}

func (stdoutLogger) Log(msg string) { fmt.Println(msg) }

type nopLogger struct{}

func (nopLogger) Log(string) {}

var (
	logger    Logger = nopLogger{}
	logEnable        = false
)

func setLogger(impl Logger) {
	if impl == nil {
		logger = nopLogger{}
		return
	}
	logger = impl
}

func setLogEnable(enable bool) { logEnable = enable }

func trace(msg string) {
	if logEnable {
		logger.Log(msg)
	}
}
