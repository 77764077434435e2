package engine

import (
	"strings"
	"testing"
	"time"
)

func TestExecuteJobSuccess(t *testing.T) {
	res := ExecuteJob("echo '  hello  '", 5*time.Second)
	if !res.Success {
		t.Fatalf("Expected success, got error %q", res.Error)
	}
	if res.Output != "hello" {
		t.Errorf("Expected trimmed output 'hello', got %q", res.Output)
	}
}

func TestExecuteJobNonZeroExit(t *testing.T) {
	res := ExecuteJob("echo broken >&2; exit 2", 5*time.Second)
	if res.Success {
		t.Fatal("Expected failure for non-zero exit")
	}
	if !strings.Contains(res.Error, "broken") {
		t.Errorf("Expected stderr in error, got %q", res.Error)
	}
}

func TestExecuteJobExitWithoutStderr(t *testing.T) {
	res := ExecuteJob("exit 7", 5*time.Second)
	if res.Success {
		t.Fatal("Expected failure")
	}
	if res.Error == "" {
		t.Error("Expected a synthesized error message when stderr is empty")
	}
}

func TestExecuteJobTimeout(t *testing.T) {
	start := time.Now()
	res := ExecuteJob("sleep 5", 1*time.Second)
	elapsed := time.Since(start)

	if res.Success {
		t.Fatal("Expected timeout to be a failure")
	}
	if !strings.Contains(res.Error, "timed out after 1 seconds") {
		t.Errorf("Expected timeout message, got %q", res.Error)
	}
	if elapsed > 3*time.Second {
		t.Errorf("Expected execution cut off near the deadline, took %v", elapsed)
	}
}

func TestExecuteJobCapturesBothStreams(t *testing.T) {
	res := ExecuteJob("echo out; echo err >&2", 5*time.Second)
	if !res.Success {
		t.Fatalf("Expected success, got error %q", res.Error)
	}
	if res.Output != "out" {
		t.Errorf("Expected stdout 'out', got %q", res.Output)
	}
	if res.Error != "err" {
		t.Errorf("Expected stderr 'err', got %q", res.Error)
	}
}
