package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/onething/internal/storage"
	"github.com/julianstephens/onething/internal/summarizer"
	"github.com/julianstephens/onething/internal/synthesis"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"nil", nil, ""},
		{"already generated", synthesis.ErrAlreadyGenerated, "already been generated"},
		{"wrapped already generated", fmt.Errorf("reflect: %w", storage.ErrAlreadyGenerated), "already been generated"},
		{"locked", synthesis.ErrLocked, "still locked"},
		{"in progress", synthesis.ErrGenerationInProgress, "already being generated"},
		{
			name:     "generation failure",
			err:      &synthesis.GenerationError{Month: "2024-06", Reason: "the request timed out", Err: errors.New("deadline")},
			contains: "please try again",
		},
		{
			name:     "missing credential",
			err:      &synthesis.GenerationError{Month: "2024-06", Reason: "no API key is configured", Err: summarizer.ErrMissingCredential},
			contains: "onething keyring set",
		},
		{"not found", storage.ErrNotFound, "Nothing has been saved"},
		{"other", errors.New("disk full"), "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.err)
			if tt.contains == "" && got != "" {
				t.Errorf("Describe(nil) = %q, want empty", got)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Describe() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}

func TestDescribeDistinguishesDuplicateFromFailure(t *testing.T) {
	dup := Describe(synthesis.ErrAlreadyGenerated)
	fail := Describe(&synthesis.GenerationError{Month: "2024-06", Reason: "x", Err: errors.New("x")})
	if dup == fail {
		t.Error("duplicate generation and failure must be described differently")
	}
	if strings.Contains(dup, "try again") {
		t.Error("duplicate generation must not suggest retrying")
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
