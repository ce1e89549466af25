// Package exec provides interfaces and implementations for command execution.
// This abstraction allows for dependency injection and testing of code that
// launches knowledge_repo and git.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Commander defines the interface for executing commands.
// Implementations can provide real command execution or mock behavior for testing.
type Commander interface {
	// Run executes a command in the specified directory with the given arguments.
	// Returns the combined stdout and stderr output, and any execution error.
	Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error)

	// Stream executes a command attached to the caller's terminal and waits for it.
	// Returns the exit status. A non-zero status is not an error; the error is
	// only set when the process could not be started or waited on.
	Stream(ctx context.Context, dir string, command string, args ...string) (int, error)
}

// RealCommander executes commands using the real operating system.
// This is the production implementation that actually runs commands.
// Nil streams default to the process's own stdin, stdout and stderr.
type RealCommander struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the command using exec.CommandContext.
// The command is executed in the specified directory with the provided arguments.
func (c *RealCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Stream runs the command with inherited standard streams.
func (c *RealCommander) Stream(ctx context.Context, dir string, command string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Stdin = orReader(c.Stdin, os.Stdin)
	cmd.Stdout = orWriter(c.Stdout, os.Stdout)
	cmd.Stderr = orWriter(c.Stderr, os.Stderr)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

func orReader(r, fallback io.Reader) io.Reader {
	if r == nil {
		return fallback
	}
	return r
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

// CommandExecutor provides a higher-level interface for common execution patterns.
// It wraps a Commander and provides convenience methods.
type CommandExecutor struct {
	commander Commander
}

// NewCommandExecutor creates a new CommandExecutor with the given Commander.
// If commander is nil, a RealCommander is used.
func NewCommandExecutor(commander Commander) *CommandExecutor {
	if commander == nil {
		commander = &RealCommander{}
	}
	return &CommandExecutor{commander: commander}
}

// Commander returns the wrapped Commander.
func (e *CommandExecutor) Commander() Commander {
	return e.commander
}

// RunBinary executes a binary command with arguments.
// The binary can contain spaces (e.g., "python -m knowledge_repo") and will be properly split.
func (e *CommandExecutor) RunBinary(ctx context.Context, dir string, binary string, args []string) ([]byte, error) {
	command, allArgs, err := splitBinary(binary, args)
	if err != nil {
		return nil, err
	}
	return e.commander.Run(ctx, dir, command, allArgs...)
}

// StreamBinary is RunBinary with the caller's terminal attached.
func (e *CommandExecutor) StreamBinary(ctx context.Context, dir string, binary string, args []string) (int, error) {
	command, allArgs, err := splitBinary(binary, args)
	if err != nil {
		return -1, err
	}
	return e.commander.Stream(ctx, dir, command, allArgs...)
}

func splitBinary(binary string, args []string) (string, []string, error) {
	binaryParts := strings.Fields(binary)
	if len(binaryParts) == 0 {
		return "", nil, fmt.Errorf("empty binary command")
	}
	allArgs := append(binaryParts[1:len(binaryParts):len(binaryParts)], args...)
	return binaryParts[0], allArgs, nil
}

// RunShell executes a command through sh -c.
func (e *CommandExecutor) RunShell(ctx context.Context, dir string, command string) ([]byte, error) {
	return e.commander.Run(ctx, dir, "sh", "-c", command)
}

// StreamShell executes a command line through sh -c with the caller's terminal attached.
func (e *CommandExecutor) StreamShell(ctx context.Context, dir string, command string) (int, error) {
	return e.commander.Stream(ctx, dir, "sh", "-c", command)
}
