package servicedef

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strconv"
)

// TodoID is a todo identifier exactly as the server sent it. Servers may use JSON strings or
// JSON numbers; numbers keep their original digits, so IDs beyond the range of a float64 are
// sent back unchanged. The zero value means there was no ID.
type TodoID struct {
	raw      string
	isNumber bool
}

func TodoIDFromString(s string) TodoID {
	data, _ := json.Marshal(s)
	return TodoID{raw: string(data)}
}

func TodoIDFromInt(n int64) TodoID {
	return TodoID{raw: strconv.FormatInt(n, 10), isNumber: true}
}

func (id TodoID) IsNull() bool {
	return id.raw == ""
}

func (id TodoID) IsNumber() bool {
	return id.isNumber
}

// Equal compares two IDs as JSON values: a string never equals a number, and numbers are
// compared exactly, so 42 and 42.0 are equal but 9007199254740993 and 9007199254740992 are not.
func (id TodoID) Equal(other TodoID) bool {
	if id.IsNull() || other.IsNull() {
		return id.IsNull() && other.IsNull()
	}
	if id.isNumber != other.isNumber {
		return false
	}
	if !id.isNumber {
		return id.raw == other.raw
	}
	a, okA := new(big.Rat).SetString(id.raw)
	b, okB := new(big.Rat).SetString(other.raw)
	if !okA || !okB {
		return id.raw == other.raw
	}
	return a.Cmp(b) == 0
}

// String returns the ID in JSON form, such as 42 or "abc".
func (id TodoID) String() string {
	if id.IsNull() {
		return "null"
	}
	return id.raw
}

func (id TodoID) MarshalJSON() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *TodoID) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return err
	}
	switch v := value.(type) {
	case nil:
		*id = TodoID{}
	case string:
		*id = TodoIDFromString(v)
	case json.Number:
		*id = TodoID{raw: v.String(), isNumber: true}
	default:
		return errors.New("todo ID must be a string or a number")
	}
	return nil
}
