package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

// DecodeTodo parses the content returned by todo_add. The result must have an ID.
func DecodeTodo(content string) (servicedef.Todo, error) {
	var todo servicedef.Todo
	if err := json.Unmarshal([]byte(content), &todo); err != nil {
		return todo, &DecodeError{What: "todo", Data: content, Err: err}
	}
	if todo.ID.IsNull() {
		return todo, &DecodeError{What: "todo", Data: content, Err: errors.New(`missing "id" property`)}
	}
	return todo, nil
}

// DecodeTodoList parses the content returned by todo_list. Every item must have an ID.
func DecodeTodoList(content string) ([]servicedef.Todo, error) {
	var todos []servicedef.Todo
	if err := json.Unmarshal([]byte(content), &todos); err != nil {
		return nil, &DecodeError{What: "todo list", Data: content, Err: err}
	}
	if todos == nil {
		return nil, &DecodeError{What: "todo list", Data: content, Err: errors.New("expected a JSON array")}
	}
	for i, t := range todos {
		if t.ID.IsNull() {
			return nil, &DecodeError{What: "todo list", Data: content,
				Err: fmt.Errorf(`item %d has no "id" property`, i)}
		}
	}
	return todos, nil
}
