// Package framework contains the low-level test runner used by the contract tests. It is not
// specific to tool servers.
//
// The general model is:
//
// 1. A test run is a tree of named tests, each represented by a Context that is similar to Go's
// *testing.T. A Context implements the Errorf and FailNow methods that the testify assert and
// require packages need, so those can be used inside tests.
//
// 2. Tests run strictly one at a time in the order they are declared. As soon as one test fails,
// the run is halted and no later test is started.
//
// 3. Every test produces a TestResult, and the run as a whole produces Results, so callers can
// decide what to do with the outcome without parsing any console output. Progress is reported
// through a TestLogger.
package framework
