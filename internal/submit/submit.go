// Package submit hands rendered batch scripts to an external scheduler
// submission command and captures the assigned job handle.
package submit

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Justype/batchsub/internal/utils"
	"github.com/google/uuid"
)

// Handle is the opaque job identifier assigned by the external scheduler.
type Handle string

func (h Handle) String() string { return string(h) }

// Options configures a Submitter.
type Options struct {
	ScriptsDir  string   // Directory for transient script files (default: os.TempDir())
	KeepScripts bool     // Keep transient scripts after submission (debugging)
	ExtraArgs   []string // Extra arguments passed to the submission command
}

// Submitter invokes an external submission command for rendered scripts.
// Each Submit call is independent; the only shared state is the scripts
// directory, and file names are unique per invocation.
type Submitter struct {
	cmdPath     string
	dialect     Dialect
	scriptsDir  string
	keepScripts bool
	extraArgs   []string
}

// New creates a Submitter for the given submission command.
// The command may be a bare name (resolved via PATH) or an explicit path.
func New(command string, opts Options) (*Submitter, error) {
	if command == "" {
		return nil, ErrSubmitCmdNotFound
	}

	cmdPath := command
	if !strings.ContainsRune(command, os.PathSeparator) {
		resolved, err := exec.LookPath(command)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSubmitCmdNotFound, err)
		}
		cmdPath = resolved
	} else {
		if absPath, err := filepath.Abs(cmdPath); err == nil {
			cmdPath = absPath
		}
		info, err := os.Stat(cmdPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSubmitCmdNotFound, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", ErrSubmitCmdNotFound, cmdPath)
		}
	}

	scriptsDir := opts.ScriptsDir
	if scriptsDir == "" {
		scriptsDir = os.TempDir()
	}

	return &Submitter{
		cmdPath:     cmdPath,
		dialect:     DetectDialect(cmdPath),
		scriptsDir:  scriptsDir,
		keepScripts: opts.KeepScripts,
		extraArgs:   opts.ExtraArgs,
	}, nil
}

// Command returns the resolved path of the submission command.
func (s *Submitter) Command() string { return s.cmdPath }

// Dialect returns the detected submission dialect.
func (s *Submitter) Dialect() Dialect { return s.dialect }

// Submit writes the rendered script to a transient file, invokes the
// submission command, and returns the job handle parsed from its output.
//
// tag names the work item and is embedded in the transient file name; a uuid
// suffix keeps concurrent invocations from colliding. The transient file is
// removed after the command returns unless KeepScripts is set.
//
// A non-zero exit is returned as a SubmissionError carrying the command's
// combined output verbatim. Context cancellation surfaces the same way.
func (s *Submitter) Submit(ctx context.Context, script string, tag string) (Handle, error) {
	if strings.TrimSpace(script) == "" {
		return "", ErrEmptyScript
	}

	scriptPath, err := s.writeScript(script, tag)
	if err != nil {
		return "", err
	}
	if !s.keepScripts {
		defer os.Remove(scriptPath)
	}

	cmd := exec.CommandContext(ctx, s.cmdPath, s.arguments(scriptPath)...)
	if s.dialect.ReadsStdin() {
		// bsub reads the job script from stdin: bsub < script
		file, err := os.Open(scriptPath)
		if err != nil {
			return "", NewSubmissionError(s.cmdPath, tag, "", err)
		}
		defer file.Close()
		cmd.Stdin = file
	}

	utils.PrintDebug("Executing: %s", strings.Join(cmd.Args, " "))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", NewSubmissionError(s.cmdPath, tag, string(output), err)
	}

	handle, err := s.dialect.ParseHandle(string(output))
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return handle, nil
}

// arguments builds the argv tail for the submission command.
func (s *Submitter) arguments(scriptPath string) []string {
	args := append([]string(nil), s.extraArgs...)
	if !s.dialect.ReadsStdin() {
		args = append(args, scriptPath)
	}
	return args
}

// writeScript writes the rendered script to a uniquely-named transient file.
func (s *Submitter) writeScript(script string, tag string) (string, error) {
	if err := os.MkdirAll(s.scriptsDir, utils.PermDir); err != nil {
		return "", fmt.Errorf("failed to create scripts directory %s: %w", s.scriptsDir, err)
	}

	name := "job"
	if tag != "" {
		name = utils.SafeName(tag)
	}
	scriptName := fmt.Sprintf("%s-%s.sh", name, uuid.NewString()[:8])
	scriptPath := filepath.Join(s.scriptsDir, scriptName)

	if err := os.WriteFile(scriptPath, []byte(script), utils.PermExec); err != nil {
		return "", fmt.Errorf("failed to write script %s: %w", scriptPath, err)
	}
	return scriptPath, nil
}
