package main

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiharness/toolserver-contract-tests/servicedef"
	"github.com/aiharness/toolserver-contract-tests/toolservertest"
)

func init() {
	color.NoColor = true
}

func startServer(t *testing.T, options toolservertest.Options) *toolservertest.Server {
	server := toolservertest.NewServer(options)
	t.Cleanup(server.Close)
	return server
}

func runCommand(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestAllTestsPass(t *testing.T) {
	server := startServer(t, toolservertest.Options{})

	code, out, _ := runCommand("--url", server.URL, "--temp-dir", t.TempDir())

	assert.Equal(t, 0, code)
	assert.Equal(t,
		"Testing Health Check... ✅ PASS\n"+
			"Testing List Tools... ✅ PASS\n"+
			"Testing System Self-Test... ✅ PASS\n"+
			"Testing File Operations... ✅ PASS\n"+
			"Testing Todo Lifecycle... ✅ PASS\n"+
			"\n"+
			"All integration tests passed!\n",
		out)
}

func TestHostPortAndProject(t *testing.T) {
	server := startServer(t, toolservertest.Options{})
	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	code, _, _ := runCommand("--host", u.Hostname(), "--port", u.Port(), "--project", "other",
		"--temp-dir", t.TempDir())

	assert.Equal(t, 0, code)
	call, ok := server.LastCall(servicedef.ToolTodoAdd)
	require.True(t, ok)
	assert.Equal(t, "other", call.ProjectID)
	assert.Equal(t, "other", call.Arguments["project_id"])
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	server := startServer(t, toolservertest.Options{
		Tools: []string{servicedef.ToolReadFile, servicedef.ToolWriteFile},
	})

	code, out, _ := runCommand("--url", server.URL, "--temp-dir", t.TempDir())

	assert.Equal(t, 1, code)
	assert.Equal(t,
		"Testing Health Check... ✅ PASS\n"+
			"Testing List Tools... ❌ FAIL: missing tool(s): todo_add, build_list_commands "+
			"(server advertised: read_file, write_file)\n",
		out)
	assert.Empty(t, server.Calls())
}

func TestServerNotReachable(t *testing.T) {
	server := toolservertest.NewServer(toolservertest.Options{})
	serverURL := server.URL
	server.Close()

	code, out, _ := runCommand("--url", serverURL)

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Testing Health Check... ❌ FAIL: server is not reachable: GET "+serverURL+"/ failed")
	assert.NotContains(t, out, "List Tools")
}

func TestDebugShowsRequestsAndReproduceCommand(t *testing.T) {
	server := startServer(t, toolservertest.Options{SelfTestOutput: "everything FAILED"})
	tempDir := t.TempDir()

	code, out, _ := runCommand("--url", server.URL, "--temp-dir", tempDir, "--debug")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Testing System Self-Test... ❌ FAIL: self-test failed:\neverything FAILED\n")
	assert.Contains(t, out, "    DEBUG [")
	assert.Contains(t, out, ">> POST "+server.URL+"/call")
	assert.Contains(t, out, "To run only the failed test again:\n  toolserver-contract-tests --url "+
		server.URL+" --project default --temp-dir "+tempDir+" --run '^System Self-Test$' --debug\n")
}

func TestDebugAllUsesProcessLogger(t *testing.T) {
	server := startServer(t, toolservertest.Options{})

	code, out, _ := runCommand("--url", server.URL, "--temp-dir", t.TempDir(), "--debug-all")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "Testing tool server at "+server.URL)
	assert.Contains(t, out, "Ran 5 tests, 0 failed")
	assert.Contains(t, out, "<< 200 ")
}

func TestRunFilterAndSummary(t *testing.T) {
	server := startServer(t, toolservertest.Options{})

	code, out, _ := runCommand("--url", server.URL, "--temp-dir", t.TempDir(),
		"--run", "Health", "--run", "Todo", "--summary")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Some tests will be skipped")
	assert.Contains(t, out, "Testing Health Check... ✅ PASS\n")
	assert.Contains(t, out, "Testing List Tools... SKIPPED (excluded by filter parameters)\n")
	assert.Contains(t, out, "Testing Todo Lifecycle... ✅ PASS\n")
	assert.Contains(t, out, "2 passed, 0 failed, 3 skipped\n")
	assert.NotContains(t, server.Calls(), servicedef.ToolSystemSelfTest)
}

func TestEnvironmentAndConfigFile(t *testing.T) {
	server := startServer(t, toolservertest.Options{})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("TOOLHARNESS_URL", server.URL)
		t.Setenv("TOOLHARNESS_TEMP_DIR", t.TempDir())
		code, _, _ := runCommand()
		assert.Equal(t, 0, code)
	})

	t.Run("config file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "harness.yaml")
		content := "url: " + server.URL + "\nproject: from-file\ntemp_dir: " + t.TempDir() + "\n"
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o600))

		code, _, _ := runCommand("--config", configFile)
		assert.Equal(t, 0, code)
		call, ok := server.LastCall(servicedef.ToolTodoList)
		require.True(t, ok)
		assert.Equal(t, "from-file", call.ProjectID)
	})
}

func TestInvalidParameters(t *testing.T) {
	for _, args := range [][]string{
		{"--port", "0"},
		{"--port", "not-a-number"},
		{"--url", "localhost:8787"},
		{"--project", ""},
		{"--run", "("},
		{"--unknown-flag"},
		{"extra-argument"},
		{"--config", "/does/not/exist.yaml"},
	} {
		code, out, errOut := runCommand(args...)
		assert.Equal(t, 1, code, "args: %v", args)
		assert.Empty(t, out, "args: %v", args)
		assert.Contains(t, errOut, "Invalid parameters:", "args: %v", args)
	}
}

func TestHelp(t *testing.T) {
	code, out, _ := runCommand("--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "--port")
	assert.Contains(t, out, "--project")
	assert.Contains(t, out, "(default 8787)")
}
