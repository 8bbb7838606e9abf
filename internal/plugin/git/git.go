// Package git wraps the handful of git primitives the plugin manager needs.
// Every operation is a single external process invocation with a structured
// argument list; failures are captured with the process output and returned,
// never raised past the caller.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Operations defines the git primitives used by the orchestrators.
type Operations interface {
	// Clone clones a repository into dest.
	Clone(ctx context.Context, url, dest string, opts CloneOptions) error

	// Pull fast-forwards an existing working tree.
	Pull(ctx context.Context, dir string) error

	// Checkout checks out the given ref in an existing working tree.
	Checkout(ctx context.Context, dir, ref string) error

	// LocalHead returns the commit hash of HEAD in a working tree.
	LocalHead(ctx context.Context, dir string) (string, error)

	// RemoteHead returns the commit hash the remote's HEAD points at,
	// without touching the local working tree.
	RemoteHead(ctx context.Context, url string) (string, error)
}

// CloneOptions contains options for cloning a repository.
type CloneOptions struct {
	// Depth specifies the depth for shallow clones (0 for a full clone).
	Depth int

	// Branch specifies the branch to clone.
	Branch string
}

// ExecOperations implements Operations using os/exec.
type ExecOperations struct{}

// NewExecOperations creates a new ExecOperations instance.
func NewExecOperations() Operations {
	return &ExecOperations{}
}

// Clone clones a repository into dest.
func (g *ExecOperations) Clone(ctx context.Context, url, dest string, opts CloneOptions) error {
	args := []string{"clone"}

	if opts.Depth > 0 {
		args = append(args, "--depth", fmt.Sprintf("%d", opts.Depth))
	}

	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}

	args = append(args, url, dest)

	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone failed: %w (output: %s)", err, string(output))
	}

	return nil
}

// Pull performs a git pull in the specified directory.
func (g *ExecOperations) Pull(ctx context.Context, dir string) error {
	cmd := exec.CommandContext(ctx, "git", "pull")
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git pull failed: %w (output: %s)", err, string(output))
	}

	return nil
}

// Checkout checks out the given ref in the specified directory.
func (g *ExecOperations) Checkout(ctx context.Context, dir, ref string) error {
	if ref == "" {
		return fmt.Errorf("checkout ref cannot be empty")
	}

	cmd := exec.CommandContext(ctx, "git", "checkout", ref)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git checkout failed: %w (output: %s)", err, string(output))
	}

	return nil
}

// LocalHead returns the current commit hash of the working tree.
func (g *ExecOperations) LocalHead(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git rev-parse failed: %w (output: %s)", err, string(output))
	}

	hash := strings.TrimSpace(string(output))
	if hash == "" {
		return "", fmt.Errorf("git rev-parse returned empty hash")
	}

	return hash, nil
}

// RemoteHead returns the commit hash of the remote's HEAD.
func (g *ExecOperations) RemoteHead(ctx context.Context, url string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "ls-remote", url, "HEAD")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git ls-remote failed: %w (output: %s)", err, string(output))
	}

	// Output shape: "<hash>\tHEAD\n".
	fields := strings.Fields(string(output))
	if len(fields) == 0 {
		return "", fmt.Errorf("git ls-remote returned no HEAD for %s", url)
	}

	return fields[0], nil
}
