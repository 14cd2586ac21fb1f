package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aiharness/toolserver-contract-tests/client"
	"github.com/aiharness/toolserver-contract-tests/framework"
	"github.com/aiharness/toolserver-contract-tests/tooltests"
)

const programName = "toolserver-contract-tests"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Could not read .env file: %s\n", err)
		os.Exit(1)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses the command line, runs the test suite, and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var params commandParams
	exitCode := 0

	cmd := &cobra.Command{
		Use:   programName,
		Short: "Run integration tests against a running tool server",
		Long: "Checks that a tool server is reachable, advertises the required tools, and correctly\n" +
			"executes file and todo operations. Stops at the first failing test.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := params.resolve(cmd.Flags()); err != nil {
				return err
			}
			exitCode = runTests(params, stdout)
			return nil
		},
	}
	params.bindFlags(cmd.Flags())
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Invalid parameters: %s\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", programName)
		return 1
	}
	return exitCode
}

func runTests(params commandParams, out io.Writer) int {
	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		logger, flush := framework.NewZapLogger(out, "harness")
		defer flush()
		mainDebugLogger = logger
	}

	baseURL := params.baseURL()
	mainDebugLogger.Printf("Testing tool server at %s (project %q, temp dir %s)",
		baseURL, params.projectID, params.tempDir)

	toolClient := client.NewToolServerClient(baseURL, params.projectID, nil, mainDebugLogger)
	config := tooltests.Config{
		ProjectID:    params.projectID,
		TempDir:      params.tempDir,
		SelfTestPath: params.selfTestPath,
	}

	framework.PrintFilterDescription(out, params.filters)

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := tooltests.RunTestSuite(toolClient, config, params.filters.AsFilter, testLogger)
	mainDebugLogger.Printf("Ran %d tests, %d failed", len(results.Tests), len(results.Failures))

	if params.summary {
		fmt.Fprintln(out)
		framework.PrintResults(out, results)
	}

	if !results.OK() {
		if params.debug || params.debugAll {
			failed := results.Failures[0].TestID
			fmt.Fprintf(out, "\nTo run only the failed test again:\n  %s\n", params.reproduceCommand(failed))
		}
		return 1
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "All integration tests passed!")
	return 0
}
