package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	HealthPath = "/"
	ToolsPath  = "/tools"
	CallPath   = "/call"

	// HealthMarker must appear somewhere in the body of a successful health check.
	HealthMarker = "Running"
)

const (
	ToolSystemSelfTest = "system_self_test"
	ToolReadFile       = "read_file"
	ToolWriteFile      = "write_file"
	ToolListDirectory  = "list_directory"
	ToolTodoAdd        = "todo_add"
	ToolTodoList       = "todo_list"
	ToolTodoCheck      = "todo_check"
	ToolTodoRemove     = "todo_remove"
	ToolBuildListCmds  = "build_list_commands"
)

// SelfTestPassMarker must appear in the output of system_self_test if the server's own
// diagnostics succeeded.
const SelfTestPassMarker = "PASS"

const DefaultProjectID = "default"

// RequiredTools are the tools that every server must advertise in its catalog. Additional
// tools are allowed.
var RequiredTools = []string{
	ToolReadFile,
	ToolWriteFile,
	ToolTodoAdd,
	ToolBuildListCmds,
}

// CallToolParams is the request body for POST /call. Arguments can be any value that encodes
// to a JSON object, such as one of the *Args types below or a map.
type CallToolParams struct {
	Name      string      `json:"name"`
	Arguments interface{} `json:"arguments"`
	ProjectID string      `json:"project_id"`
}

// CallToolResponse is the response body for POST /call. Content is only meaningful if
// Success is true; Error is set by servers when it is false.
type CallToolResponse struct {
	Success    *bool               `json:"success"`
	Content    *string             `json:"content,omitempty"`
	Error      *string             `json:"error,omitempty"`
	DurationMS ldvalue.OptionalInt `json:"duration_ms,omitempty"`
}

// ToolsListResponse is the response body for GET /tools.
type ToolsListResponse struct {
	Tools []ToolDefinition `json:"tools"`
}

type ToolDefinition struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	InputSchema ldvalue.Value `json:"input_schema,omitempty"`
}

// Todo is a todo item as returned by todo_add and todo_list. Servers may use either strings
// or numbers for ID; see TodoID.
type Todo struct {
	ID          TodoID              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Completed   bool                `json:"completed"`
	Position    ldvalue.OptionalInt `json:"position,omitempty"`
	ProjectID   string              `json:"project_id,omitempty"`
}

type SelfTestArgs struct {
	ProjectPath string `json:"project_path"`
}

type PathArgs struct {
	Path string `json:"path"`
}

type WriteFileArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type TodoAddArgs struct {
	Title     string `json:"title"`
	ProjectID string `json:"project_id"`
}

type TodoListArgs struct {
	ProjectID string `json:"project_id"`
}

type TodoCheckArgs struct {
	ID        TodoID `json:"id"`
	Completed bool   `json:"completed"`
}

type TodoRemoveArgs struct {
	ID TodoID `json:"id"`
}
