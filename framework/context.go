package framework

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
	halted     bool
}

// Context represents a test or subtest. Tests use it much as they would use *testing.T.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	deferred    []func()
}

// Run executes the root action of a test run and returns the results of every test that it
// started with Context.Run.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		c.runDeferred()
		if len(c.id.Path) == 0 {
			return // the root context is not a test
		}
		result := c.result()
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) runDeferred() {
	for i := len(c.deferred) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.Debug("panic in deferred cleanup: %+v", r)
				}
			}()
			c.deferred[i]()
		}()
	}
	c.deferred = nil
}

func (c *Context) result() TestResult {
	return TestResult{
		TestID:     c.id,
		Errors:     c.errors,
		Skipped:    c.skipped,
		SkipReason: c.skipReason,
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest and returns true if it passed or was skipped.
//
// If any earlier test in this run has failed, the subtest is not started at all and Run
// returns false.
func (c *Context) Run(name string, action func(*Context)) bool {
	if c.env.halted {
		return false
	}
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		reason := "excluded by filter parameters"
		c.env.results.Tests = append(c.env.results.Tests, TestResult{TestID: id, Skipped: true, SkipReason: reason})
		c.env.testLogger.TestSkipped(id, reason)
		return true
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
		return true
	}
	c.env.testLogger.TestFinished(id, c1.result(), c1.debugLogger.Output())
	if c1.failed {
		c.env.halted = true
		return false
	}
	return true
}

// Errorf records a failure without stopping the test. The testify assert package calls this.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := reformatError(fmt.Errorf(format, args...))
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow stops the test immediately. The testify require package calls this.
func (c *Context) FailNow() {
	panic(c)
}

// FailWith records err as the reason for the failure and stops the test immediately. Unlike
// Errorf, the error value is kept as it is, so callers can inspect it in TestResult.Errors
// with errors.As.
func (c *Context) FailWith(err error) {
	if err == nil {
		err = errors.New("test failed with no failure message")
	}
	c.failed = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
	c.FailNow()
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules a function to run when the test ends, whether or not it failed. Deferred
// functions run in last-in-first-out order. A panic in one of them is logged and ignored.
func (c *Context) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

var testifyLabelRegex = regexp.MustCompile(`^\t([A-Za-z ]+):\s*\t(.*)$`)

// reformatError turns the multi-line, tab-aligned failure text produced by testify into
// something that reads well on one or two console lines. Other errors are returned unchanged.
func reformatError(err error) error {
	text := err.Error()
	if !strings.Contains(text, "Error Trace:") {
		return err
	}
	var sections []string
	keep := false
	for _, line := range strings.Split(text, "\n") {
		if m := testifyLabelRegex.FindStringSubmatch(line); m != nil {
			label := m[1]
			keep = label != "Error Trace" && label != "Test"
			if keep {
				if label == "Error" {
					sections = append(sections, strings.TrimSpace(m[2]))
				} else {
					sections = append(sections, label+": "+strings.TrimSpace(m[2]))
				}
			}
			continue
		}
		if keep && len(sections) > 0 && strings.TrimSpace(line) != "" {
			sections[len(sections)-1] += " " + strings.TrimSpace(line)
		}
	}
	if len(sections) == 0 {
		return err
	}
	return errors.New(strings.Join(sections, "; "))
}
