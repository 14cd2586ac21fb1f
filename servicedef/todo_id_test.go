package servicedef

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTodoID(t *testing.T, s string) TodoID {
	t.Helper()
	var id TodoID
	require.NoError(t, json.Unmarshal([]byte(s), &id))
	return id
}

func TestLargeNumericTodoIDKeepsAllDigits(t *testing.T) {
	id := parseTodoID(t, `9007199254740993`)
	assert.True(t, id.IsNumber())
	assert.Equal(t, "9007199254740993", id.String())

	data, err := json.Marshal(TodoCheckArgs{ID: id, Completed: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9007199254740993,"completed":true}`, string(data))
	assert.Contains(t, string(data), "9007199254740993")

	assert.False(t, id.Equal(parseTodoID(t, `9007199254740992`)))
	assert.True(t, id.Equal(parseTodoID(t, `9007199254740993`)))
}

func TestTodoIDEquality(t *testing.T) {
	assert.True(t, parseTodoID(t, `42`).Equal(TodoIDFromInt(42)))
	assert.True(t, parseTodoID(t, `42.0`).Equal(TodoIDFromInt(42)))
	assert.False(t, parseTodoID(t, `"42"`).Equal(TodoIDFromInt(42)))
	assert.True(t, parseTodoID(t, `"42"`).Equal(TodoIDFromString("42")))
	assert.True(t, parseTodoID(t, `"abc"`).Equal(TodoIDFromString("abc")))
	assert.False(t, TodoID{}.Equal(TodoIDFromString("")))
	assert.True(t, parseTodoID(t, `null`).IsNull())
}

func TestTodoIDStringsRoundTrip(t *testing.T) {
	id := parseTodoID(t, `"01HXYZ"`)
	assert.False(t, id.IsNumber())
	assert.Equal(t, `"01HXYZ"`, id.String())
	data, err := json.Marshal(TodoRemoveArgs{ID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"01HXYZ"}`, string(data))
}

func TestTodoIDRejectsOtherTypes(t *testing.T) {
	var id TodoID
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}
