// Package toolservertest provides an in-memory tool server for testing the contract tests
// themselves. It implements the same HTTP surface as a real server: a status resource, a tool
// catalog, and a tool call endpoint, with enough real behavior (files on disk, todo lists per
// project) for the whole suite to pass against it. Individual tools can be replaced to
// simulate a broken server.
package toolservertest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

// DefaultTools is the catalog advertised by a Server unless Options.Tools is set. It matches
// the tool set of the desktop server that the contract tests were written for.
var DefaultTools = []string{
	servicedef.ToolSystemSelfTest,
	servicedef.ToolReadFile,
	servicedef.ToolWriteFile,
	servicedef.ToolListDirectory,
	servicedef.ToolTodoAdd,
	servicedef.ToolTodoRemove,
	servicedef.ToolTodoCheck,
	servicedef.ToolTodoList,
	"todo_get_next",
	"todo_insert",
	"todo_move",
	"build_add_command",
	"build_remove_command",
	servicedef.ToolBuildListCmds,
	"build_run_command",
	"build_set_default",
	"build_get_default",
}

var builtinTools = map[string]ToolFunc{
	servicedef.ToolSystemSelfTest: selfTest,
	servicedef.ToolReadFile:       readFile,
	servicedef.ToolWriteFile:      writeFile,
	servicedef.ToolListDirectory:  listDirectory,
	servicedef.ToolTodoAdd:        todoAdd,
	servicedef.ToolTodoList:       todoList,
	servicedef.ToolTodoCheck:      todoCheck,
	servicedef.ToolTodoRemove:     todoRemove,
}

// ToolFunc implements a tool. A non-nil error is reported to the caller as an unsuccessful
// call.
type ToolFunc func(s *Server, call Call) (string, error)

// Call is a tool call as it was received by the server. Numbers in Arguments are json.Number
// values, so they keep the exact digits that the client sent.
type Call struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
	ProjectID string                 `json:"project_id"`
}

type Options struct {
	// HealthBody is the body returned by GET /. The default contains "Running".
	HealthBody string

	// HealthStatus, ToolsStatus, and CallStatus override the HTTP status of the corresponding
	// endpoint. If one of them is set to a non-2xx value, that endpoint returns only the status.
	HealthStatus int
	ToolsStatus  int
	CallStatus   int

	// Tools is the list of tool names in the catalog. It does not affect which tools can be
	// called.
	Tools []string

	// SelfTestOutput replaces the normal output of system_self_test.
	SelfTestOutput string

	// NumericIDs makes todo IDs JSON numbers instead of strings.
	NumericIDs bool

	// FirstNumericID is the ID of the first todo added when NumericIDs is true. The default is 1.
	FirstNumericID int64

	// Overrides replaces the implementation of individual tools.
	Overrides map[string]ToolFunc
}

// Server is a running fake tool server. Close it when done.
type Server struct {
	*httptest.Server
	options Options
	tools   map[string]ToolFunc
	todos   *todoStore
	calls   []Call
	lock    sync.Mutex
}

// NewServer starts a Server on a local port.
func NewServer(options Options) *Server {
	if options.HealthBody == "" {
		options.HealthBody = "Tool Server Running"
	}
	if options.Tools == nil {
		options.Tools = DefaultTools
	}
	s := &Server{
		options: options,
		todos:   newTodoStore(options.NumericIDs, options.FirstNumericID),
	}
	s.tools = make(map[string]ToolFunc)
	for name, fn := range builtinTools {
		s.tools[name] = fn
	}
	for name, fn := range options.Overrides {
		s.tools[name] = fn
	}

	router := chi.NewRouter()
	router.Get(servicedef.HealthPath, s.handleHealth)
	router.Get(servicedef.ToolsPath, s.handleTools)
	router.Post(servicedef.CallPath, s.handleCall)
	s.Server = httptest.NewServer(router)
	return s
}

// Calls returns the names of all tools that have been called, in order.
func (s *Server) Calls() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	ret := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		ret = append(ret, c.Name)
	}
	return ret
}

// LastCall returns the most recent call to the named tool.
func (s *Server) LastCall(name string) (Call, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := len(s.calls) - 1; i >= 0; i-- {
		if s.calls[i].Name == name {
			return s.calls[i], true
		}
	}
	return Call{}, false
}

// Todos returns a copy of the todo list for a project.
func (s *Server) Todos(projectID string) []servicedef.Todo {
	return s.todos.list(projectID)
}

// Default returns the built-in implementation of a tool, so that an override can delegate to
// it.
func Default(name string) ToolFunc {
	return builtinTools[name]
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !isSuccess(s.options.HealthStatus) {
		w.WriteHeader(s.options.HealthStatus)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, s.options.HealthBody)
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	if !isSuccess(s.options.ToolsStatus) {
		w.WriteHeader(s.options.ToolsStatus)
		return
	}
	resp := servicedef.ToolsListResponse{Tools: []servicedef.ToolDefinition{}}
	for _, name := range s.options.Tools {
		resp.Tools = append(resp.Tools, servicedef.ToolDefinition{Name: name})
	}
	writeJSON(w, resp)
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	if !isSuccess(s.options.CallStatus) {
		w.WriteHeader(s.options.CallStatus)
		return
	}
	var call Call
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&call); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}
	if call.Arguments == nil {
		call.Arguments = map[string]interface{}{}
	}
	if call.ProjectID == "" {
		call.ProjectID = servicedef.DefaultProjectID
	}

	s.lock.Lock()
	s.calls = append(s.calls, call)
	fn := s.tools[call.Name]
	s.lock.Unlock()

	if fn == nil {
		writeJSON(w, map[string]interface{}{"success": false, "error": "Unknown tool: " + call.Name})
		return
	}
	started := time.Now()
	content, err := fn(s, call)
	if err != nil {
		writeJSON(w, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}
	writeJSON(w, map[string]interface{}{
		"success":     true,
		"content":     content,
		"duration_ms": time.Since(started).Milliseconds(),
	})
}

func isSuccess(status int) bool {
	return status == 0 || (status >= 200 && status < 300)
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func stringArg(call Call, name string) (string, error) {
	v, ok := call.Arguments[name]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", name)
	}
	return s, nil
}
