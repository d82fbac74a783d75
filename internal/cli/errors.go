package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/service"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/store"
)

const (
	// ExitSuccess is returned when the command succeeds.
	ExitSuccess = 0
	// ExitNotFound is returned when the requested store does not exist.
	ExitNotFound = 1
	// ExitInvalidArgs is returned when flags or arguments are invalid.
	ExitInvalidArgs = 2
	// ExitDataError is returned when the stores or provinces file cannot be read.
	ExitDataError = 3
)

type cliError struct {
	Code     string
	Message  string
	ExitCode int
}

func (e *cliError) Error() string { return e.Message }

func invalidArgsError(format string, args ...any) error {
	return &cliError{Code: "INVALID_ARGS", Message: fmt.Sprintf(format, args...), ExitCode: ExitInvalidArgs}
}

func dataError(action string, err error) error {
	return &cliError{Code: "DATA_ERROR", Message: fmt.Sprintf("%s: %v", action, err), ExitCode: ExitDataError}
}

// classify maps any command error to a cliError.
func classify(err error) *cliError {
	var typed *cliError
	if errors.As(err, &typed) {
		return typed
	}

	msg := strings.TrimSpace(err.Error())
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		strings.Contains(msg, "unknown command"),
		strings.Contains(msg, "unknown flag"),
		strings.Contains(msg, "unknown shorthand flag"),
		strings.Contains(msg, "invalid argument"),
		strings.Contains(msg, "flag needs an argument"):
		return &cliError{Code: "INVALID_ARGS", Message: msg, ExitCode: ExitInvalidArgs}
	case errors.Is(err, store.ErrStoreNotFound):
		return &cliError{Code: "NOT_FOUND", Message: msg, ExitCode: ExitNotFound}
	default:
		return &cliError{Code: "DATA_ERROR", Message: msg, ExitCode: ExitDataError}
	}
}

func printErrorJSON(w io.Writer, err *cliError) {
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":     err.Code,
			"message":  err.Message,
			"exitCode": err.ExitCode,
		},
	})
}

func formatErrorText(err *cliError) string {
	return fmt.Sprintf("error[%s]: %s", strings.ToLower(err.Code), err.Message)
}
