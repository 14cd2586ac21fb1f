package toolservertest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

func selfTest(s *Server, call Call) (string, error) {
	if s.options.SelfTestOutput != "" {
		return s.options.SelfTestOutput, nil
	}
	projectPath, err := stringArg(call, "project_path")
	if err != nil {
		return "", err
	}
	overall := servicedef.SelfTestPassMarker
	pathStatus := "ok"
	if info, err := os.Stat(projectPath); err != nil || !info.IsDir() {
		pathStatus = "not a directory"
		overall = "FAIL"
	}
	lines := []string{
		"Self-test results:",
		fmt.Sprintf("- project path %s: %s", projectPath, pathStatus),
		"- todo store: ok",
		"Overall: " + overall,
	}
	return strings.Join(lines, "\n"), nil
}

func readFile(s *Server, call Call) (string, error) {
	path, err := stringArg(call, "path")
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeFile(s *Server, call Call) (string, error) {
	path, err := stringArg(call, "path")
	if err != nil {
		return "", err
	}
	content, err := stringArg(call, "content")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return fmt.Sprintf("Wrote %d bytes to %s", len(content), path), nil
}

func listDirectory(s *Server, call Call) (string, error) {
	path, err := stringArg(call, "path")
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", err
	}
	var lines []string
	for _, e := range entries {
		if e.IsDir() {
			lines = append(lines, "[DIR] "+e.Name())
		} else {
			lines = append(lines, "[FILE] "+e.Name())
		}
	}
	return fmt.Sprintf("Contents of %s:\n%s", filepath.Clean(path), strings.Join(lines, "\n")), nil
}
