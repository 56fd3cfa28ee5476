package core

import (
	"errors"
	"fmt"
)

// Kind classifies what went wrong so the CLI and notifier can render
// failures consistently.
type Kind int

const (
	// KindConfiguration: bad or missing input, malformed credentials.
	KindConfiguration Kind = iota
	// KindEnvironment: a required tool is missing/incompatible, or
	// filesystem setup failed.
	KindEnvironment
	// KindConflict: leftover state from a prior run blocks progress.
	KindConflict
	// KindOperation: an external tool invoked by a sequencing step failed.
	KindOperation
	// KindHealthCheck: the mail service was not confirmed healthy post-backup.
	KindHealthCheck
	// KindNotification: alert delivery itself failed.
	KindNotification
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindEnvironment:
		return "environment"
	case KindConflict:
		return "conflict"
	case KindOperation:
		return "operation"
	case KindHealthCheck:
		return "healthcheck"
	case KindNotification:
		return "notification"
	}
	return "unknown"
}

// Error is the run-fatal error type. Step is set for operation errors and
// names the command or sequence step that failed.
type Error struct {
	Kind Kind
	Step string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Step != "" {
		msg = fmt.Sprintf("[%s] %s", e.Step, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err (or anything it wraps) is an Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// ConfigurationErr reports bad or missing input.
func ConfigurationErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// EnvironmentErr reports a missing/incompatible dependency or a failed
// filesystem setup action.
func EnvironmentErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindEnvironment, Msg: fmt.Sprintf(format, args...)}
}

// ConflictErr reports leftover state from a previous run.
func ConflictErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// OperationErr reports a failed sequencing step. step names the command or
// step for diagnostics.
func OperationErr(step, format string, args ...interface{}) *Error {
	return &Error{Kind: KindOperation, Step: step, Msg: fmt.Sprintf(format, args...)}
}

// HealthCheckErr reports a post-backup service health failure.
func HealthCheckErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindHealthCheck, Msg: fmt.Sprintf(format, args...)}
}

// NotificationErr reports that alert delivery failed.
func NotificationErr(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotification, Msg: fmt.Sprintf(format, args...), Err: err}
}
