package template

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrEmptyTemplate indicates the template has no content
	ErrEmptyTemplate = errors.New("template is empty")

	// ErrTemplateNotFound indicates the template file was not found
	ErrTemplateNotFound = errors.New("template file not found")
)

// InvalidTemplateError represents a malformed template (unbalanced or
// unterminated braces, bad placeholder names)
type InvalidTemplateError struct {
	Name   string // Template name (file path or synthetic name)
	Line   int    // 1-based line number where the problem was found (0 if unknown)
	Reason string // Reason for the failure
}

func (e *InvalidTemplateError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid template %s at line %d: %s", e.Name, e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid template %s: %s", e.Name, e.Reason)
}

// Is allows errors.Is to match InvalidTemplateError
func (e *InvalidTemplateError) Is(target error) bool {
	_, ok := target.(*InvalidTemplateError)
	return ok
}

// UnresolvedPlaceholderError represents placeholders left without a
// substitution. Missing always holds the complete sorted set of missing keys.
type UnresolvedPlaceholderError struct {
	Name    string   // Template name
	Missing []string // Missing placeholder names, sorted, no duplicates
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("template %s has unresolved placeholders: %s",
		e.Name, strings.Join(e.Missing, ", "))
}

// Is allows errors.Is to match UnresolvedPlaceholderError
func (e *UnresolvedPlaceholderError) Is(target error) bool {
	_, ok := target.(*UnresolvedPlaceholderError)
	return ok
}

// NewInvalidTemplateError creates a new InvalidTemplateError
func NewInvalidTemplateError(name string, line int, reason string) *InvalidTemplateError {
	return &InvalidTemplateError{
		Name:   name,
		Line:   line,
		Reason: reason,
	}
}

// NewUnresolvedPlaceholderError creates a new UnresolvedPlaceholderError
func NewUnresolvedPlaceholderError(name string, missing []string) *UnresolvedPlaceholderError {
	return &UnresolvedPlaceholderError{
		Name:    name,
		Missing: missing,
	}
}

// IsInvalidTemplateError checks if an error is an InvalidTemplateError
func IsInvalidTemplateError(err error) bool {
	var ite *InvalidTemplateError
	return errors.As(err, &ite)
}

// IsUnresolvedPlaceholderError checks if an error is an UnresolvedPlaceholderError
func IsUnresolvedPlaceholderError(err error) bool {
	var upe *UnresolvedPlaceholderError
	return errors.As(err, &upe)
}
