package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aiharness/toolserver-contract-tests/framework"
)

var healthCheckID = framework.TestID{Path: []string{"Health Check"}}

func TestConsoleTestLoggerPass(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf}
	logger.TestStarted(healthCheckID)
	logger.TestFinished(healthCheckID, framework.TestResult{TestID: healthCheckID}, nil)
	assert.Equal(t, "Testing Health Check... ✅ PASS\n", buf.String())
}

func TestConsoleTestLoggerFail(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf}
	err := errors.New("server not running correctly")
	logger.TestStarted(healthCheckID)
	logger.TestError(healthCheckID, err)
	logger.TestFinished(healthCheckID, framework.TestResult{TestID: healthCheckID, Errors: []error{err}}, nil)
	assert.Equal(t, "Testing Health Check... ❌ FAIL: server not running correctly\n", buf.String())
}

func TestConsoleTestLoggerSkipped(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf}
	logger.TestStarted(healthCheckID)
	logger.TestSkipped(healthCheckID, "")
	logger.TestStarted(healthCheckID)
	logger.TestSkipped(healthCheckID, "because")
	assert.Equal(t, "Testing Health Check... SKIPPED\nTesting Health Check... SKIPPED (because)\n", buf.String())
}

func TestConsoleTestLoggerDebugOutput(t *testing.T) {
	debugOutput := framework.CapturedOutput{
		{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Message: "hello"},
	}
	passed := framework.TestResult{TestID: healthCheckID}
	failed := framework.TestResult{TestID: healthCheckID, Errors: []error{errors.New("x")}}
	dumped := "    DEBUG [2024-01-02 03:04:05.000] hello\n"

	for _, p := range []struct {
		name                 string
		onFailure, onSuccess bool
		result               framework.TestResult
		expectDump           bool
	}{
		{"failure with --debug", true, false, failed, true},
		{"success with --debug", true, false, passed, false},
		{"success with --debug-all", true, true, passed, true},
		{"failure without debug", false, false, failed, false},
	} {
		t.Run(p.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: p.onFailure, DebugOutputOnSuccess: p.onSuccess}
			logger.TestFinished(healthCheckID, p.result, debugOutput)
			if p.expectDump {
				assert.Contains(t, buf.String(), dumped)
			} else {
				assert.NotContains(t, buf.String(), "DEBUG")
			}
		})
	}
}
