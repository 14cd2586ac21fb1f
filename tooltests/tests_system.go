package tooltests

import (
	"strings"

	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

// DoSelfTest asks the server to run its own diagnostics. We only check that it claims success.
func DoSelfTest(t *T) {
	output := t.RequireToolCall(servicedef.ToolSystemSelfTest,
		servicedef.SelfTestArgs{ProjectPath: t.Config().SelfTestPath})
	if !strings.Contains(output, servicedef.SelfTestPassMarker) {
		t.Fail(&SelfTestError{Output: output})
	}
}
