// Package tooltests contains the tool server contract tests themselves and their supporting API.
//
// The lower-level framework package runs the tests and collects results, and the client
// package handles HTTP communication with the server.
package tooltests
