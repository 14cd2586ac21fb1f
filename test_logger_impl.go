package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/aiharness/toolserver-contract-tests/framework"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

// ConsoleTestLogger prints one line per test: "Testing {name}..." when it starts, followed on
// the same line by the outcome.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "Testing %s...", id)
}

// TestError does nothing, since all of a test's errors are shown by TestFinished.
func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {}

func (c *ConsoleTestLogger) TestFinished(
	id framework.TestID,
	result framework.TestResult,
	debugOutput framework.CapturedOutput,
) {
	failed := result.Failed()
	if failed {
		_, _ = failColor.Fprintf(c.Out, " ❌ FAIL: %s\n", result.Message())
	} else {
		_, _ = passColor.Fprintln(c.Out, " ✅ PASS")
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		_, _ = skipColor.Fprintln(c.Out, " SKIPPED")
	} else {
		_, _ = skipColor.Fprintf(c.Out, " SKIPPED (%s)\n", reason)
	}
}
