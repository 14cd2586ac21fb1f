package tooltests

import (
	"github.com/aiharness/toolserver-contract-tests/client"
	"github.com/aiharness/toolserver-contract-tests/framework"
	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

// T represents a test in the tool server test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. Those features are provided by the lower-level framework
// package. It also provides access to the tool server, with every request and response written
// to the test's debug log.
//
// Tests fail by calling Fail with one of the error types in this package, so that the failure
// message says exactly what was expected and what was observed. T also implements the
// require.TestingT interface, so assertions from testify can be used too.
type T struct {
	context *framework.Context
	env     *environment
}

type environment struct {
	client *client.ToolServerClient
	config Config
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Fail causes the test to fail with the specified error and immediately exit.
func (t *T) Fail(err error) {
	t.context.FailWith(err)
}

// Run runs a subtest, returning false if it failed or could not be started because an earlier
// test failed.
func (t *T) Run(name string, action func(*T)) bool {
	return t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug adds a message to the test's debug output.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer schedules a cleanup action for the end of the test.
func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

func (t *T) Config() Config {
	return t.env.config
}

// Client returns a client for the tool server that logs to this test's debug output.
func (t *T) Client() *client.ToolServerClient {
	return t.env.client.WithLogger(t.context.DebugLogger())
}

// RequireToolCall calls a tool and returns the content of its result. The test fails and
// immediately exits if the call is not successful.
func (t *T) RequireToolCall(name string, arguments interface{}) string {
	content, err := t.Client().CallTool(name, arguments)
	if err != nil {
		t.Fail(err)
	}
	return content
}

// RequireTodoList reads the todo list for the configured project. The test fails and
// immediately exits if it cannot be read or parsed.
func (t *T) RequireTodoList() []servicedef.Todo {
	content := t.RequireToolCall(servicedef.ToolTodoList,
		servicedef.TodoListArgs{ProjectID: t.env.config.ProjectID})
	todos, err := client.DecodeTodoList(content)
	if err != nil {
		t.Fail(err)
	}
	return todos
}
