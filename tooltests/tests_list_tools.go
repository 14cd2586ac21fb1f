package tooltests

import (
	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

// DoListToolsTest verifies that the tool catalog includes every required tool. Tools that we
// don't know about are allowed.
func DoListToolsTest(t *T) {
	resp, err := t.Client().ListTools()
	if err != nil {
		t.Fail(err)
	}

	advertised := make(map[string]bool)
	var names []string
	for _, tool := range resp.Tools {
		advertised[tool.Name] = true
		names = append(names, tool.Name)
	}
	t.Debug("Server advertised %d tools", len(names))

	var missing []string
	for _, name := range servicedef.RequiredTools {
		if !advertised[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		t.Fail(&MissingToolError{Missing: missing, Advertised: names})
	}
}
