package ingest

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DictationProvider is an optional speech-to-text capability. Absence is a
// valid, detectable state reported by Available, not an exception at use
// time.
type DictationProvider interface {
	// Available returns nil when dictation can be offered, or a
	// *CapabilityError explaining why not.
	Available() error
	// Listen blocks for one recognized utterance. It fails with
	// ErrNoSpeech, ErrPermissionDenied, or a wrapped recognizer error.
	Listen(ctx context.Context) (string, error)
}

// ExecProvider runs an external speech-to-text command and reads one
// recognized utterance from its stdout. The command is user-configured
// (dictation.command); an empty command means the capability is absent.
type ExecProvider struct {
	Command string
	Args    []string
}

// NewExecProvider builds a provider from a configured command line. Returns
// nil when no command is configured, which the workflow treats as the
// capability being absent.
func NewExecProvider(commandLine string) *ExecProvider {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	return &ExecProvider{Command: fields[0], Args: fields[1:]}
}

// Available implements DictationProvider.
func (p *ExecProvider) Available() error {
	if _, err := exec.LookPath(p.Command); err != nil {
		return &CapabilityError{
			Capability: "speech recognition",
			Reason:     fmt.Sprintf("recognizer command %q not found", p.Command),
		}
	}
	return nil
}

// Listen implements DictationProvider. The recognizer's exit status maps
// onto the distinct failure modes: a clean run with empty output is "no
// speech", a permission failure is surfaced as such, and anything else is
// wrapped.
func (p *ExecProvider) Listen(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.ToLower(string(exitErr.Stderr))
			if strings.Contains(stderr, "permission") || strings.Contains(stderr, "denied") {
				return "", ErrPermissionDenied
			}
		}
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	utterance := strings.TrimSpace(string(out))
	if utterance == "" {
		return "", ErrNoSpeech
	}
	return utterance, nil
}

var _ DictationProvider = (*ExecProvider)(nil)
