// Package errors provides a structured error type (BuildError) that carries
// the generation stage an error originated from, so the CLI can report which
// step of a run failed before exiting non-zero.
package errors

import (
	"fmt"
)

// Stage identifies the part of the generation pipeline an error belongs to.
type Stage string

const (
	StageConfig     Stage = "config"
	StageContent    Stage = "content"
	StageRender     Stage = "render"
	StageResolve    Stage = "resolve"
	StageCompose    Stage = "compose"
	StageFileSystem Stage = "filesystem"
	StagePublish    Stage = "publish"
	StageVerify     Stage = "verify"
	StageInternal   Stage = "internal"
)

// Severity indicates how critical an error is.
type Severity string

const (
	SeverityFatal   Severity = "fatal"   // Aborts the run
	SeverityWarning Severity = "warning" // Recovered via fallback, logged only
)

// BuildError is a structured error with stage classification and context.
type BuildError struct {
	Stage    Stage         `json:"stage"`
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BuildError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Unwrap implements error unwrapping.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *BuildError) WithContext(key string, value any) *BuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a fatal BuildError for the given stage.
func New(stage Stage, message string) *BuildError {
	return &BuildError{
		Stage:    stage,
		Severity: SeverityFatal,
		Message:  message,
	}
}

// Wrap creates a fatal BuildError that wraps an existing error.
func Wrap(err error, stage Stage, message string) *BuildError {
	return &BuildError{
		Stage:    stage,
		Severity: SeverityFatal,
		Message:  message,
		Cause:    err,
	}
}

// IsStage checks whether an error belongs to a specific stage.
func IsStage(err error, stage Stage) bool {
	if be, ok := err.(*BuildError); ok {
		return be.Stage == stage
	}
	return false
}

// GetStage extracts the stage from an error, or StageInternal if it is not a
// BuildError.
func GetStage(err error) Stage {
	if be, ok := err.(*BuildError); ok {
		return be.Stage
	}
	return StageInternal
}
