package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestRunMainSuccess(t *testing.T) {
	orig := executeFunc
	defer func() { executeFunc = orig }()
	executeFunc = func([]string, io.Writer, io.Writer) error { return nil }

	exited := false
	runMain([]string{"ccdocs"}, io.Discard, io.Discard, func(int) { exited = true })

	if exited {
		t.Fatal("success must not exit non-zero")
	}
}

func TestRunMainErrorExitsOne(t *testing.T) {
	orig := executeFunc
	defer func() { executeFunc = orig }()
	executeFunc = func([]string, io.Writer, io.Writer) error { return errors.New("boom") }

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"ccdocs"}, io.Discard, &stderr, func(c int) { code = c })

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "boom") {
		t.Fatalf("stderr = %q, want error text", stderr.String())
	}
}

func TestRunMainSilentExit(t *testing.T) {
	orig := executeFunc
	defer func() { executeFunc = orig }()
	executeFunc = func([]string, io.Writer, io.Writer) error { return &SilentExitError{Code: 3} }

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"ccdocs"}, io.Discard, &stderr, func(c int) { code = c })

	if code != 3 {
		t.Fatalf("exit code = %d, want 3", code)
	}
	if stderr.Len() != 0 {
		t.Fatalf("silent exit must not print, got %q", stderr.String())
	}
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	defer func() { Version, Commit, BuildDate = origVersion, origCommit, origDate }()

	Version, Commit, BuildDate = "1.2.3", "unknown", "unknown"
	if got := versionString(); got != "1.2.3" {
		t.Fatalf("versionString() = %q", got)
	}

	Commit = "abc1234"
	if got := versionString(); !strings.Contains(got, "abc1234") {
		t.Fatalf("versionString() = %q, want commit", got)
	}

	BuildDate = "2026-08-30"
	if got := versionString(); !strings.Contains(got, "2026-08-30") {
		t.Fatalf("versionString() = %q, want build date", got)
	}
}
