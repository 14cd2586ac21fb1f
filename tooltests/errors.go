package tooltests

import (
	"fmt"
	"strings"

	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

// HealthCheckError means that the server's status resource could not be queried, or did not
// say that the server was running.
type HealthCheckError struct {
	Body string
	Err  error
}

func (e *HealthCheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("server is not reachable: %s", e.Err)
	}
	return fmt.Sprintf("server not running correctly: expected status text containing %q, got %q",
		servicedef.HealthMarker, e.Body)
}

func (e *HealthCheckError) Unwrap() error {
	return e.Err
}

// MissingToolError means that the tool catalog did not include every required tool.
type MissingToolError struct {
	Missing    []string
	Advertised []string
}

func (e *MissingToolError) Error() string {
	return fmt.Sprintf("missing tool(s): %s (server advertised: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Advertised, ", "))
}

// SelfTestError means that the server's own diagnostics did not report success. Output is
// everything the server returned.
type SelfTestError struct {
	Output string
}

func (e *SelfTestError) Error() string {
	return fmt.Sprintf("self-test failed:\n%s", e.Output)
}

// ContentMismatchError means that a file did not contain what was written to it.
type ContentMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *ContentMismatchError) Error() string {
	return fmt.Sprintf("read content does not match written content for %s: expected %q, got %q",
		e.Path, e.Expected, e.Actual)
}

// FileNotListedError means that a file that was written did not appear in a listing of its
// directory.
type FileNotListedError struct {
	FileName  string
	Directory string
	Listing   string
}

func (e *FileNotListedError) Error() string {
	return fmt.Sprintf("file %q not found in directory listing of %s: %q", e.FileName, e.Directory, e.Listing)
}

// TodoNotFoundError means that a todo that was just added did not appear in the todo list.
type TodoNotFoundError struct {
	ID        servicedef.TodoID
	ProjectID string
	Listed    []servicedef.TodoID
}

func (e *TodoNotFoundError) Error() string {
	return fmt.Sprintf("added todo %s not found in list for project %q (listed IDs: %s)",
		e.ID.String(), e.ProjectID, joinIDs(e.Listed))
}

// TodoLookupError means that a todo whose existence was already confirmed was missing from a
// later todo list.
type TodoLookupError struct {
	ID     servicedef.TodoID
	After  string
	Listed []servicedef.TodoID
}

func (e *TodoLookupError) Error() string {
	return fmt.Sprintf("todo %s disappeared from the list after %s (listed IDs: %s)",
		e.ID.String(), e.After, joinIDs(e.Listed))
}

// TodoNotCompletedError means that a todo was not marked completed after todo_check.
type TodoNotCompletedError struct {
	ID servicedef.TodoID
}

func (e *TodoNotCompletedError) Error() string {
	return fmt.Sprintf("todo %s was not marked completed: expected completed=true, got false", e.ID.String())
}

// TodoNotRemovedError means that a todo was still listed after todo_remove.
type TodoNotRemovedError struct {
	ID servicedef.TodoID
}

func (e *TodoNotRemovedError) Error() string {
	return fmt.Sprintf("todo %s was not removed: it is still in the list", e.ID.String())
}

func joinIDs(ids []servicedef.TodoID) string {
	if len(ids) == 0 {
		return "none"
	}
	ss := make([]string, 0, len(ids))
	for _, id := range ids {
		ss = append(ss, id.String())
	}
	return strings.Join(ss, ", ")
}
