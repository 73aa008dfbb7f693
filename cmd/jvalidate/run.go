package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// exitCoder lets a command signal a specific process exit code without
// Run having to inspect error strings.
type exitCoder interface {
	ExitCode() int
}

// invalidError is returned by the validate/batch commands when every
// input parsed fine but at least one instance failed schema validation.
// It carries exit code 1, distinct from the usage/IO exit code 2 that a
// bare error from cobra falls back to.
type invalidError struct{ count int }

func (e *invalidError) Error() string {
	return fmt.Sprintf("%d instance(s) failed validation", e.count)
}
func (e *invalidError) ExitCode() int { return 1 }

// Run builds the command tree, executes it against args, and returns the
// process exit code: 0 on success, 1 when validation found problems, 2 on
// any usage or I/O error.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelInfo)
	logger := newLogger(stderr, logLevel)

	root := newRootCmd(logger, logLevel)
	root.SetArgs(args[1:])
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var ec exitCoder
		if errors.As(err, &ec) {
			return ec.ExitCode()
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
