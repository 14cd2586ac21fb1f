package framework

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "started "+id.String())
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String())
}

func (r *recordingTestLogger) TestFinished(id TestID, result TestResult, debugOutput CapturedOutput) {
	outcome := "PASS"
	if result.Failed() {
		outcome = "FAIL: " + result.Message()
	}
	r.events = append(r.events, fmt.Sprintf("finished %s %s", id, outcome))
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, fmt.Sprintf("skipped %s (%s)", id, reason))
}

func assertEvents(t *testing.T, expected []string, logger *recordingTestLogger) {
	t.Helper()
	if diff := cmp.Diff(expected, logger.events); diff != "" {
		t.Errorf("unexpected test logger events (-want +got):\n%s", diff)
	}
}

func TestRunReportsPassedTests(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		assert.True(t, c.Run("a", func(c *Context) {}))
		assert.True(t, c.Run("b", func(c *Context) { c.Debug("hello") }))
	})

	assert.True(t, results.OK())
	require.Len(t, results.Tests, 2)
	assert.Equal(t, "a", results.Tests[0].TestID.String())
	assert.Equal(t, "b", results.Tests[1].TestID.String())
	assertEvents(t, []string{
		"started a", "finished a PASS",
		"started b", "finished b PASS",
	}, logger)
}

func TestRunStopsAfterFirstFailure(t *testing.T) {
	logger := &recordingTestLogger{}
	var ranThird bool
	results := Run(nil, logger, func(c *Context) {
		assert.True(t, c.Run("first", func(c *Context) {}))
		assert.False(t, c.Run("second", func(c *Context) {
			c.Errorf("bad thing %d", 1)
			c.FailNow()
		}))
		assert.False(t, c.Run("third", func(c *Context) { ranThird = true }))
	})

	assert.False(t, ranThird)
	assert.False(t, results.OK())
	require.Len(t, results.Tests, 2)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "second", results.Failures[0].TestID.String())
	assert.Equal(t, "bad thing 1", results.Failures[0].Message())
	assertEvents(t, []string{
		"started first", "finished first PASS",
		"started second", "error second", "finished second FAIL: bad thing 1",
	}, logger)
}

func TestErrorfWithoutFailNowStillFails(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		assert.False(t, c.Run("a", func(c *Context) {
			c.Errorf("first")
			c.Errorf("second")
		}))
	})
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "first\nsecond", results.Failures[0].Message())
}

type customError struct {
	detail string
}

func (e *customError) Error() string { return "custom: " + e.detail }

func TestFailWithKeepsErrorValue(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.FailWith(&customError{detail: "x"})
		})
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)

	var ce *customError
	require.True(t, errors.As(results.Failures[0].Errors[0], &ce))
	assert.Equal(t, "x", ce.detail)
	assert.Equal(t, "custom: x", results.Failures[0].Message())
}

func TestFailNowWithNoMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) { c.FailNow() })
	})
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "test failed with no failure message", results.Failures[0].Message())
}

func TestUnexpectedPanicIsFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) { panic("oops") })
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Message(), "unexpected panic in test: oops")
}

func TestDeferredFunctionsRunInReverseOrderEvenOnFailure(t *testing.T) {
	var calls []string
	Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Defer(func() { calls = append(calls, "first") })
			c.Defer(func() { calls = append(calls, "second") })
			c.Defer(func() { panic("ignored") })
			c.Errorf("failed")
			c.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, calls)
}

func TestSkipIsNotFailure(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		assert.True(t, c.Run("a", func(c *Context) { c.SkipWithReason("not today") }))
		assert.True(t, c.Run("b", func(c *Context) {}))
	})
	assert.True(t, results.OK())
	require.Len(t, results.Tests, 2)
	assert.True(t, results.Tests[0].Skipped)
	assert.Equal(t, "not today", results.Tests[0].SkipReason)
	assertEvents(t, []string{
		"started a", "skipped a (not today)",
		"started b", "finished b PASS",
	}, logger)
}

func TestFilterExcludesTests(t *testing.T) {
	logger := &recordingTestLogger{}
	var ran []string
	filter := func(id TestID) bool { return id.String() != "b" }
	results := Run(filter, logger, func(c *Context) {
		for _, name := range []string{"a", "b", "c"} {
			name := name
			c.Run(name, func(c *Context) { ran = append(ran, name) })
		}
	})
	assert.Equal(t, []string{"a", "c"}, ran)
	require.Len(t, results.Tests, 3)
	assert.True(t, results.Tests[1].Skipped)
	assert.Contains(t, logger.events, "skipped b (excluded by filter parameters)")
}

func TestSubtestIDsIncludeParent(t *testing.T) {
	var innerID TestID
	Run(nil, nil, func(c *Context) {
		c.Run("outer", func(c *Context) {
			c.Run("inner", func(c *Context) { innerID = c.ID() })
		})
	})
	assert.Equal(t, "outer/inner", innerID.String())
}

func TestTestifyFailuresAreReformatted(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			require.Equal(c, 1, 2)
		})
	})
	require.Len(t, results.Failures, 1)
	message := results.Failures[0].Message()
	assert.Contains(t, message, "Not equal")
	assert.Contains(t, message, "expected: 1")
	assert.NotContains(t, message, "Error Trace")
}

func TestDebugOutputIsCapturedPerTest(t *testing.T) {
	var outputs []CapturedOutput
	logger := &capturingTestLogger{onFinished: func(output CapturedOutput) { outputs = append(outputs, output) }}
	Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) { c.Debug("message %d", 1) })
		c.Run("b", func(c *Context) { c.DebugLogger().Printf("message %d", 2) })
	})
	require.Len(t, outputs, 2)
	require.Len(t, outputs[0], 1)
	assert.Equal(t, "message 1", outputs[0][0].Message)
	require.Len(t, outputs[1], 1)
	assert.Equal(t, "message 2", outputs[1][0].Message)
}

type capturingTestLogger struct {
	nullTestLogger
	onFinished func(CapturedOutput)
}

func (c *capturingTestLogger) TestFinished(id TestID, result TestResult, debugOutput CapturedOutput) {
	c.onFinished(debugOutput)
}
