package main

import (
	"os/exec"
	"strings"
	"testing"
)

// TestRunAdditionScript builds the rocc binary and runs it against a
// testdata script end-to-end, building then exec'ing the binary rather
// than calling internal packages directly.
func TestRunAdditionScript(t *testing.T) {
	buildCmd := exec.Command("go", "build", "-o", "../../bin/rocc", ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build rocc: %v\n%s", err, out)
	}

	runCmd := exec.Command("../../bin/rocc", "run", "testdata/addition.roc")
	out, err := runCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("rocc run failed: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "68") {
		t.Fatalf("expected output to contain %q, got %q", "68", string(out))
	}
}
