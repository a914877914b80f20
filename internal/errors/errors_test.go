package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCCSError_Error(t *testing.T) {
	err := New(ExitWorktreeError, "worktree already exists")
	if err.Error() != "worktree already exists" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	wrapped := Wrap(ExitContainerFailed, "container start failed", fmt.Errorf("exit status 125"))
	if wrapped.Error() != "container start failed: exit status 125" {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
}

func TestCCSError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(ExitGeneralError, "outer", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil-cause ccs error", NotARepo("/tmp/nowhere"), ExitNotARepo},
		{"wrapped ccs error", fmt.Errorf("context: %w", BranchError("branch not found", nil)), ExitBranchError},
		{"plain error", fmt.Errorf("plain"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
