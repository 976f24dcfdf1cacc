// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/inigrep/inigrep/internal/issue"
	"github.com/inigrep/inigrep/pkg/inigrep"
	"github.com/inigrep/inigrep/pkg/types"

	"github.com/charmbracelet/log"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. Always create via newServiceError to enforce the
// Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyQueryError maps a library error to an actionable error, its
// issue catalog entry and an exit code. Keypath errors are usage errors;
// everything else came from reading input.
func classifyQueryError(err error, resource string) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	if errors.Is(err, inigrep.ErrInvalidKeypath) {
		ae := issue.NewErrorContext().
			WithOperation("parse keypath").
			WithResource(resource).
			WithSuggestion("Use the form 'section.key'; the last period separates the key").
			WithSuggestion("List valid keypaths with 'inigrep paths FILE'").
			Wrap(err).
			BuildError()
		return &ExitError{Code: types.ExitUsage, Err: newServiceError(ae, issue.KeypathInvalidId)}
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		resource = pathErr.Path
	}

	ctx := issue.NewErrorContext().
		WithOperation("read input").
		WithResource(resource).
		Wrap(err)

	id := issue.Id(0)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		id = issue.FileNotFoundId
		ctx = ctx.
			WithSuggestion("Check the file path for typos").
			WithSuggestion("Pass --ignore-missing to skip files that do not exist")
	case errors.Is(err, fs.ErrPermission):
		id = issue.PermissionDeniedId
		ctx = ctx.WithSuggestion("Check the file permissions")
	}

	if id == 0 {
		return &ExitError{Code: types.ExitIOError, Err: ctx.BuildError()}
	}
	return &ExitError{Code: types.ExitIOError, Err: newServiceError(ctx.BuildError(), id)}
}

// renderServiceError renders the optional issue help section of err in the
// given glamour style.
func renderServiceError(stderr io.Writer, logger *log.Logger, err error, style string) {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			logger.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// fail classifies err and, in verbose mode, prints its suggestions, full
// chain and issue help before handing it back to the command runner.
func (a *App) fail(err error, resource string) error {
	exitErr := classifyQueryError(err, resource)
	a.logger.Debug("query failed", "code", exitErr.Code, "error", exitErr.Err)

	if a.opts.Verbose {
		fmt.Fprintln(a.stderr, ErrorStyle.Render(formatErrorForDisplay(exitErr, true)))
		renderServiceError(a.stderr, a.logger, exitErr, a.cfg.UI.ColorScheme.String())
	}
	return exitErr
}
