package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// PathPlaceholder is replaced by the source path in command arguments
const PathPlaceholder = "{path}"

// waitDelay bounds how long a killed command may hold its output pipes
const waitDelay = 2 * time.Second

// ErrEmptyCommand is returned when a command decoder has no program
var ErrEmptyCommand = errors.New("empty command")

// CommandDecoder runs an external extractor and reads its standard output
// as form-feed separated text. Arguments equal to or containing "{path}"
// receive the source path; without a placeholder the path is appended.
type CommandDecoder struct {
	argv    []string
	timeout time.Duration
}

// NewCommandDecoder creates a decoder for the given program and arguments
func NewCommandDecoder(argv ...string) *CommandDecoder {
	return &CommandDecoder{argv: append([]string(nil), argv...)}
}

// WithTimeout returns a copy of the decoder that kills the command after d.
// A zero duration means no timeout beyond the caller's context.
func (d *CommandDecoder) WithTimeout(timeout time.Duration) *CommandDecoder {
	c := *d
	c.argv = append([]string(nil), d.argv...)
	c.timeout = timeout
	return &c
}

// Args returns the command line for a source path
func (d *CommandDecoder) Args(path string) []string {
	args := make([]string, 0, len(d.argv)+1)
	substituted := false
	for _, a := range d.argv {
		if strings.Contains(a, PathPlaceholder) {
			a = strings.ReplaceAll(a, PathPlaceholder, path)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted && len(args) > 0 {
		args = append(args, path)
	}
	return args
}

// Decode runs the command for path
func (d *CommandDecoder) Decode(ctx context.Context, path string) (*Extraction, error) {
	args := d.Args(path)
	if len(args) == 0 || args[0] == "" {
		return nil, ErrEmptyCommand
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("checking source: %w", err)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.WaitDelay = waitDelay

	// Capture output
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	log.Debug().
		Str("command", args[0]).
		Str("path", path).
		Dur("elapsed", time.Since(start)).
		Int("stdout_bytes", stdout.Len()).
		Msg("external decoder finished")

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("running %s: %w", args[0], ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", args[0], err, firstLine(msg))
		}
		return nil, fmt.Errorf("running %s: %w", args[0], err)
	}

	return &Extraction{Pages: PagesFromText(stdout.String())}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
