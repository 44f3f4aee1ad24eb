// Package runner implements the core-to-tool-executor boundary (spec
// section 6): a Runner accepts an operation descriptor and returns the
// exit code plus captured stdout/stderr, exactly as the real tool
// produced them. storagecore never invents flags; it only issues the
// well-known argv shapes for mdadm, lvm, cryptsetup, mkfs.*, btrfs,
// parted, kpartx, dd, xfs_growfs, resize2fs, ntfsresize, mount/umount.
package runner

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Descriptor is an operation descriptor: an argv list, optional stdin,
// and whether the caller wants output captured at all (some callers
// only care about the exit code).
type Descriptor struct {
	Argv    []string
	Stdin   []byte
	Capture bool
}

// Result carries the ToolError-class information the core needs to
// decide whether an action succeeded.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner executes a Descriptor synchronously on the calling thread.
// storagecore imposes no timeout; callers configure that on their
// Runner implementation (e.g. by wrapping ctx with context.WithTimeout).
type Runner interface {
	Run(ctx context.Context, d Descriptor) (Result, error)
}

// ExecRunner is the production Runner, backed by os/exec the way the
// teacher's lvmd/command package wraps lvm and mdadm invocations.
type ExecRunner struct {
	// Namespace, when non-empty, is prefixed via nsenter so commands run
	// in the host's mount/PID/IPC/UTS/network namespaces from inside a
	// container, mirroring the teacher's wrapExecCommand/Containerized
	// handling.
	Namespace string
}

const nsenterPath = "/usr/bin/nsenter"

func (r *ExecRunner) wrap(argv []string) *exec.Cmd {
	if r.Namespace == "" {
		return exec.Command(argv[0], argv[1:]...)
	}
	nsArgs := append([]string{"-m", "-u", "-i", "-n", "-p", "-t", r.Namespace}, argv...)
	return exec.Command(nsenterPath, nsArgs...)
}

// Run executes d.Argv[0] with d.Argv[1:], piping d.Stdin if present.
func (r *ExecRunner) Run(ctx context.Context, d Descriptor) (Result, error) {
	if len(d.Argv) == 0 {
		return Result{}, ErrEmptyArgv
	}
	cmd := r.wrap(d.Argv)
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	if d.Stdin != nil {
		cmd.Stdin = bytes.NewReader(d.Stdin)
	}

	var stdout, stderr bytes.Buffer
	if d.Capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	log.FromContext(ctx).Info("invoking command", "args", cmd.Args)
	runErr := cmd.Run()

	result := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, newToolError(d.Argv, result.ExitCode, result.Stderr)
	}
	if runErr != nil {
		return result, runErr
	}
	return result, nil
}
