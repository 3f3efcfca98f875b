package output

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/matheuskafuri/newsassist/internal/api"
)

// Exit codes.
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitUsageError  = 2
	ExitAPIError    = 3
	ExitConfigError = 4
	ExitTimeout     = 5
)

// CLIError is an error with user-facing context and an exit code.
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
	Err        error
}

func (e *CLIError) Error() string {
	return e.Summary
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ConfigError wraps a configuration failure.
func ConfigError(err error) *CLIError {
	return &CLIError{
		Summary:    "invalid configuration",
		Detail:     err.Error(),
		Suggestion: "Check the config file or pass --config / --api-url",
		ExitCode:   ExitConfigError,
		Err:        err,
	}
}

// FromError converts err into a CLIError. API errors get a suggestion per
// kind; anything else is a general failure.
func FromError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return &CLIError{Summary: err.Error(), ExitCode: ExitGeneral, Err: err}
	}

	e := &CLIError{Summary: apiErr.Error(), Detail: apiErr.Detail(), ExitCode: ExitAPIError, Err: err}
	switch apiErr.Kind {
	case api.KindTransport:
		e.Suggestion = "Is the news service running? Check --api-url or NEWSASSIST_API_URL"
		if apiErr.Message == "request timed out" {
			e.ExitCode = ExitTimeout
			e.Suggestion = "Raise api.timeout in the config file"
		}
	case api.KindHTTP:
		if apiErr.Status >= 500 {
			e.Suggestion = "The news service failed; try again shortly"
		} else {
			e.Suggestion = "Check the command arguments"
		}
	case api.KindApplication:
		e.Suggestion = "The news service rejected the request"
	case api.KindParse:
		e.Suggestion = "The news service returned an unexpected response; check client and server versions"
	case api.KindValidation:
		e.ExitCode = ExitUsageError
		e.Detail = ""
	}
	return e
}

// FormatError writes e to the diagnostic stream.
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
	}
	if e.Detail != "" {
		fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
	}
	if e.Suggestion != "" {
		if p.useColors {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		} else {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}
