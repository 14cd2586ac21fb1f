package tooltests

import (
	"strings"

	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

// DoHealthCheckTest verifies that the server's status resource is reachable and says that the
// server is running. This is a loose text match, not a structured status payload.
func DoHealthCheckTest(t *T) {
	body, err := t.Client().GetText(servicedef.HealthPath)
	if err != nil {
		t.Fail(&HealthCheckError{Err: err})
	}
	if !strings.Contains(body, servicedef.HealthMarker) {
		t.Fail(&HealthCheckError{Body: body})
	}
}
