// internal/app/app_test.go
package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func run(argv ...string) (int, string, string) {
	var out, errb bytes.Buffer
	code := RunContext(context.Background(), argv, &out, &errb)
	return code, out.String(), errb.String()
}

func TestRunVersion(t *testing.T) {
	code, out, _ := run("--version")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out, "biorseo version") {
		t.Errorf("output = %q", out)
	}
}

func TestRunRejectsMissingSequence(t *testing.T) {
	code, _, errb := run("--theta", "0.1")
	if code != 2 {
		t.Fatalf("exit = %d, want 2", code)
	}
	if !strings.Contains(errb, "--sequence") {
		t.Errorf("stderr = %q", errb)
	}
}

func TestRunRejectsShortSequence(t *testing.T) {
	code, _, _ := run("--sequence", "GCG")
	if code != 2 {
		t.Fatalf("exit = %d, want 2", code)
	}
}

func TestRunRejectsMissingCatalog(t *testing.T) {
	code, _, errb := run("--sequence", "GCGCAAAAGCGC", "--motifs", "nosuch.csv")
	if code != 2 {
		t.Fatalf("exit = %d, want 2 (stderr %q)", code, errb)
	}
}
