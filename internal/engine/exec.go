package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"queuectl/internal/model"
)

// ExecuteJob runs a shell command with an execution deadline and captures
// its trimmed stdout/stderr. A timeout is reported as a failure with a
// synthesized error message; everything else is classified by exit status.
func ExecuteJob(command string, timeout time.Duration) model.JobResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := strings.TrimSpace(stdout.String())
	errText := strings.TrimSpace(stderr.String())

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return model.JobResult{
			Success: false,
			Error:   fmt.Sprintf("job timed out after %d seconds", int(timeout.Seconds())),
		}
	}
	if err != nil {
		if errText == "" {
			errText = err.Error()
		}
		return model.JobResult{Success: false, Output: output, Error: errText}
	}
	return model.JobResult{Success: true, Output: output, Error: errText}
}
