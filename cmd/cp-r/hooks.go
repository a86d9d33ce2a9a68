package main

import (
	"context"
	"fmt"
	"io"
	osexec "os/exec"
	"runtime"

	"github.com/k1LoW/exec"
)

// runHooks runs each hook command in dir, streaming output to w. The first
// failing hook aborts with its error.
func runHooks(ctx context.Context, hooks []string, dir string, w io.Writer) error {
	for _, hook := range hooks {
		fmt.Fprintf(w, "Running hook: %s\n", hook)

		var cmd *osexec.Cmd
		if runtime.GOOS == "windows" {
			cmd = exec.CommandContext(ctx, "cmd", "/c", hook)
		} else {
			cmd = exec.CommandContext(ctx, "sh", "-c", hook)
		}
		cmd.Dir = dir
		cmd.Stdout = w
		cmd.Stderr = w

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("hook %q failed: %w", hook, err)
		}
	}
	return nil
}
