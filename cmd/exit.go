package cmd

import (
	"errors"

	"github.com/Justype/batchsub/internal/submit"
	"github.com/Justype/batchsub/internal/template"
)

// Exit codes. Render and submission failures are distinguishable so wrapper
// scripts can decide whether a resubmission attempt makes sense.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitRenderError = 2
	ExitSubmitError = 3
)

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case template.IsInvalidTemplateError(err),
		template.IsUnresolvedPlaceholderError(err),
		errors.Is(err, template.ErrEmptyTemplate),
		errors.Is(err, template.ErrTemplateNotFound):
		return ExitRenderError
	case submit.IsSubmissionError(err),
		errors.Is(err, submit.ErrJobIDParseFailed),
		errors.Is(err, submit.ErrSubmitCmdNotFound),
		errors.Is(err, submit.ErrAlreadyInJob):
		return ExitSubmitError
	default:
		return ExitFailure
	}
}
