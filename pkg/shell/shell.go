// Package shell runs simple command pipelines of the form
// "cmd1 arg | cmd2 arg" for log-loading steps that still rely on external
// tooling. Commands are split on whitespace; no quoting or globbing is
// performed, and malformed pipelines are handled best effort.
package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/slurmframe/slurmframe/pkg/errors"
)

// Run executes the pipeline and returns its final stdout. The context
// cancels every stage.
func Run(ctx context.Context, pipeline string) (string, error) {
	stages := strings.Split(pipeline, "|")
	cmds := make([]*exec.Cmd, 0, len(stages))
	for _, stage := range stages {
		args := strings.Fields(strings.TrimSpace(stage))
		if len(args) == 0 {
			return "", errors.Newf(errors.ErrorTypeConfig, "empty stage in pipeline %q", pipeline)
		}
		cmds = append(cmds, exec.CommandContext(ctx, args[0], args[1:]...))
	}

	// Wire each stage's stdout into the next stage's stdin
	for i := 1; i < len(cmds); i++ {
		pipe, err := cmds[i-1].StdoutPipe()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrorTypeInternal, "connect pipeline stages")
		}
		cmds[i].Stdin = pipe
	}

	var out bytes.Buffer
	last := cmds[len(cmds)-1]
	last.Stdout = &out

	for _, cmd := range cmds {
		if err := cmd.Start(); err != nil {
			return "", errors.Wrap(err, errors.ErrorTypeInternal, "start pipeline stage")
		}
	}
	// Wait downstream first: waiting on an upstream stage closes its
	// stdout pipe, which would truncate data its consumer has not read
	var firstErr error
	for i := len(cmds) - 1; i >= 0; i-- {
		if err := cmds[i].Wait(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, errors.ErrorTypeData, "pipeline stage failed").
				WithDetail("stage", cmds[i].Path)
		}
	}
	if firstErr != nil {
		return "", firstErr
	}
	return out.String(), nil
}
