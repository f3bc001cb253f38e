package submit

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrSubmitCmdNotFound indicates the submission command binary was not found
	ErrSubmitCmdNotFound = errors.New("submission command not found")

	// ErrAlreadyInJob indicates we're already inside a scheduler job
	ErrAlreadyInJob = errors.New("already inside a scheduler job")

	// ErrJobIDParseFailed indicates parsing the job ID from submitter output failed
	ErrJobIDParseFailed = errors.New("failed to parse job ID from submitter output")

	// ErrEmptyScript indicates an empty rendered script was passed to Submit
	ErrEmptyScript = errors.New("rendered script is empty")
)

// SubmissionError represents an error during job submission.
// Output holds the external command's combined stdout/stderr verbatim so the
// scheduler's own diagnostics reach the caller unmodified.
type SubmissionError struct {
	Command string // Submission command that was invoked
	Tag     string // Work-item tag (may be empty)
	Output  string // Combined output from the command, unmodified
	Err     error  // Underlying error
}

func (e *SubmissionError) Error() string {
	name := e.Command
	if e.Tag != "" {
		name = fmt.Sprintf("%s (job %s)", e.Command, e.Tag)
	}
	if e.Output != "" {
		return fmt.Sprintf("submission via %s failed: %v\nOutput: %s", name, e.Err, e.Output)
	}
	return fmt.Sprintf("submission via %s failed: %v", name, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewSubmissionError creates a new SubmissionError
func NewSubmissionError(command string, tag string, output string, err error) *SubmissionError {
	return &SubmissionError{
		Command: command,
		Tag:     tag,
		Output:  output,
		Err:     err,
	}
}

// IsSubmissionError checks if an error is a SubmissionError
func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}
