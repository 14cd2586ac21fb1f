package toolservertest

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

type todoStore struct {
	numericIDs bool
	lastID     int64
	projects   map[string][]servicedef.Todo
	lock       sync.Mutex
}

func newTodoStore(numericIDs bool, firstID int64) *todoStore {
	if firstID <= 0 {
		firstID = 1
	}
	return &todoStore{
		numericIDs: numericIDs,
		lastID:     firstID - 1,
		projects:   make(map[string][]servicedef.Todo),
	}
}

func (t *todoStore) add(projectID, title string) servicedef.Todo {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.lastID++
	todo := servicedef.Todo{
		Title:     title,
		Position:  ldvalue.NewOptionalInt(len(t.projects[projectID])),
		ProjectID: projectID,
	}
	if t.numericIDs {
		todo.ID = servicedef.TodoIDFromInt(t.lastID)
	} else {
		todo.ID = servicedef.TodoIDFromString(ulid.Make().String())
	}
	t.projects[projectID] = append(t.projects[projectID], todo)
	return todo
}

func (t *todoStore) list(projectID string) []servicedef.Todo {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]servicedef.Todo{}, t.projects[projectID]...)
}

func (t *todoStore) setCompleted(projectID string, id servicedef.TodoID, completed bool) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	for i, todo := range t.projects[projectID] {
		if todo.ID.Equal(id) {
			t.projects[projectID][i].Completed = completed
			return true
		}
	}
	return false
}

func (t *todoStore) remove(projectID string, id servicedef.TodoID) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	todos := t.projects[projectID]
	for i, todo := range todos {
		if todo.ID.Equal(id) {
			t.projects[projectID] = append(todos[:i:i], todos[i+1:]...)
			return true
		}
	}
	return false
}

// projectFor uses a project_id argument if there is one, otherwise the project of the call.
func projectFor(call Call) string {
	if p, ok := call.Arguments["project_id"].(string); ok && p != "" {
		return p
	}
	return call.ProjectID
}

func idArg(call Call) (servicedef.TodoID, error) {
	var id servicedef.TodoID
	data, err := json.Marshal(call.Arguments["id"])
	if err != nil {
		return id, err
	}
	if err := json.Unmarshal(data, &id); err != nil {
		return id, fmt.Errorf(`invalid argument "id": %w`, err)
	}
	if id.IsNull() {
		return id, fmt.Errorf(`missing required argument "id"`)
	}
	return id, nil
}

func marshalContent(value interface{}) (string, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func todoAdd(s *Server, call Call) (string, error) {
	title, err := stringArg(call, "title")
	if err != nil {
		return "", err
	}
	return marshalContent(s.todos.add(projectFor(call), title))
}

func todoList(s *Server, call Call) (string, error) {
	return marshalContent(s.todos.list(projectFor(call)))
}

func todoCheck(s *Server, call Call) (string, error) {
	id, err := idArg(call)
	if err != nil {
		return "", err
	}
	completed := true
	if c, ok := call.Arguments["completed"].(bool); ok {
		completed = c
	}
	if !s.todos.setCompleted(projectFor(call), id, completed) {
		return "", fmt.Errorf("todo %s not found", id.String())
	}
	return "updated", nil
}

func todoRemove(s *Server, call Call) (string, error) {
	id, err := idArg(call)
	if err != nil {
		return "", err
	}
	if !s.todos.remove(projectFor(call), id) {
		return "", fmt.Errorf("todo %s not found", id.String())
	}
	return "removed", nil
}
