package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	otperr "github.com/u8slvn/otp-76/pkg/errors"
)

// ErrorOutput represents a structured error for JSON output.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// FormatError writes err for the user.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	detail := toDetail(err)
	if format == FormatJSON {
		return WriteJSON(w, ErrorOutput{Error: detail})
	}
	return formatErrorText(w, detail)
}

func toDetail(err error) ErrorDetail {
	var oe *otperr.OTPError
	if errors.As(err, &oe) {
		return ErrorDetail{
			Code:       oe.Code,
			Message:    oe.Message,
			Details:    oe.Details,
			Suggestion: oe.Suggestion,
			ExitCode:   oe.ExitCode,
		}
	}

	return ErrorDetail{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		ExitCode: otperr.ExitGeneral,
	}
}

func formatErrorText(w io.Writer, d ErrorDetail) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", d.Message))

	if len(d.Details) > 0 {
		keys := make([]string, 0, len(d.Details))
		for k := range d.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, d.Details[k]))
		}
	}

	if d.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\nSuggestion: %s\n", d.Suggestion))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
