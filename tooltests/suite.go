package tooltests

import (
	"time"

	"github.com/aiharness/toolserver-contract-tests/client"
	"github.com/aiharness/toolserver-contract-tests/framework"
	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

const (
	HealthCheckTestName    = "Health Check"
	ListToolsTestName      = "List Tools"
	SelfTestTestName       = "System Self-Test"
	FileOperationsTestName = "File Operations"
	TodoLifecycleTestName  = "Todo Lifecycle"
)

// DefaultTempDir is the directory used for test files when none is configured. It must be a
// directory that both the harness and the server can see at the same path.
const DefaultTempDir = "/tmp"

// Config contains everything about a test run other than how to reach the server.
type Config struct {
	// ProjectID is passed to tools that are scoped to a project.
	ProjectID string

	// TempDir is where the file operation tests create their file.
	TempDir string

	// SelfTestPath is the project_path argument for system_self_test. It defaults to TempDir.
	SelfTestPath string

	// Now is used to make test data unique. It defaults to time.Now.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.ProjectID == "" {
		c.ProjectID = servicedef.DefaultProjectID
	}
	if c.TempDir == "" {
		c.TempDir = DefaultTempDir
	}
	if c.SelfTestPath == "" {
		c.SelfTestPath = c.TempDir
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type testCase struct {
	name   string
	action func(*T)
}

var allTests = []testCase{
	{HealthCheckTestName, DoHealthCheckTest},
	{ListToolsTestName, DoListToolsTest},
	{SelfTestTestName, DoSelfTest},
	{FileOperationsTestName, DoFileOperationsTest},
	{TodoLifecycleTestName, DoTodoLifecycleTest},
}

// TestNames returns the names of all tests in the order that they run.
func TestNames() []string {
	ret := make([]string, 0, len(allTests))
	for _, tc := range allTests {
		ret = append(ret, tc.name)
	}
	return ret
}

// RunTestSuite runs every test against the server in order, stopping at the first failure.
func RunTestSuite(
	client *client.ToolServerClient,
	config Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &environment{
		client: client,
		config: config.withDefaults(),
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}
		for _, tc := range allTests {
			if !t.Run(tc.name, tc.action) {
				return
			}
		}
	})
}
