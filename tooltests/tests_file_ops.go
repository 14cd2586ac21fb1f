package tooltests

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

const testFilePrefix = "toolharness_test_"

// DoFileOperationsTest writes a uniquely named file through the server, then checks it in two
// other ways: reading it back, and listing its directory.
//
// The file is deleted directly from the local filesystem at the end of the test, which assumes
// that the harness and the server share a filesystem. That cleanup is best-effort and does not
// affect the result.
func DoFileOperationsTest(t *T) {
	config := t.Config()
	now := config.Now()

	path, err := filepath.Abs(filepath.Join(config.TempDir, testFileName(now)))
	if err != nil {
		t.Fail(err)
	}
	t.Defer(func() {
		if err := os.Remove(path); err != nil {
			t.Debug("Could not remove test file: %s", err)
		}
	})

	content := fmt.Sprintf("Test content %s", now.Format(time.RFC3339Nano))
	t.RequireToolCall(servicedef.ToolWriteFile, servicedef.WriteFileArgs{Path: path, Content: content})

	readBack := t.RequireToolCall(servicedef.ToolReadFile, servicedef.PathArgs{Path: path})
	if readBack != content {
		t.Fail(&ContentMismatchError{Path: path, Expected: content, Actual: readBack})
	}

	dir, name := filepath.Dir(path), filepath.Base(path)
	listing := t.RequireToolCall(servicedef.ToolListDirectory, servicedef.PathArgs{Path: dir})
	if !strings.Contains(listing, name) {
		t.Fail(&FileNotListedError{FileName: name, Directory: dir, Listing: listing})
	}
}

// testFileName returns a file name that is unique to this run. A ULID sorts by time, so
// leftover files from earlier runs are easy to spot.
func testFileName(now time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy())
	return testFilePrefix + id.String() + ".txt"
}
