package tooltests

import (
	"fmt"

	"github.com/aiharness/toolserver-contract-tests/client"
	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

// DoTodoLifecycleTest takes one todo through add, check, and remove. The result of each
// change is confirmed with a separate todo_list call, never by the response to the change
// itself.
func DoTodoLifecycleTest(t *T) {
	config := t.Config()

	title := fmt.Sprintf("Test Todo %d", config.Now().Unix())
	added, err := client.DecodeTodo(t.RequireToolCall(servicedef.ToolTodoAdd,
		servicedef.TodoAddArgs{Title: title, ProjectID: config.ProjectID}))
	if err != nil {
		t.Fail(err)
	}
	id := added.ID
	t.Debug("Added todo %s", id.String())

	todos := t.RequireTodoList()
	if _, ok := findTodo(todos, id); !ok {
		t.Fail(&TodoNotFoundError{ID: id, ProjectID: config.ProjectID, Listed: todoIDs(todos)})
	}

	t.RequireToolCall(servicedef.ToolTodoCheck, servicedef.TodoCheckArgs{ID: id, Completed: true})

	todos = t.RequireTodoList()
	checked, ok := findTodo(todos, id)
	if !ok {
		t.Fail(&TodoLookupError{ID: id, After: servicedef.ToolTodoCheck, Listed: todoIDs(todos)})
	}
	if !checked.Completed {
		t.Fail(&TodoNotCompletedError{ID: id})
	}

	t.RequireToolCall(servicedef.ToolTodoRemove, servicedef.TodoRemoveArgs{ID: id})

	todos = t.RequireTodoList()
	if _, ok := findTodo(todos, id); ok {
		t.Fail(&TodoNotRemovedError{ID: id})
	}
}

func findTodo(todos []servicedef.Todo, id servicedef.TodoID) (servicedef.Todo, bool) {
	for _, todo := range todos {
		if todo.ID.Equal(id) {
			return todo, true
		}
	}
	return servicedef.Todo{}, false
}

func todoIDs(todos []servicedef.Todo) []servicedef.TodoID {
	ret := make([]servicedef.TodoID, 0, len(todos))
	for _, todo := range todos {
		ret = append(ret, todo.ID)
	}
	return ret
}
