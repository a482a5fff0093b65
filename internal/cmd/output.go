package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/viant/shellkit/model/exitcode"
	"github.com/viant/shellkit/model/result"
)

// Output formats
const (
	FormatText   = "text"
	FormatStyled = "styled"
	FormatHTML   = "html"
	FormatJSON   = "json"
)

func render(w io.Writer, ret *result.Result, format string) error {
	if format == "" {
		format = FormatText
		if isTerminal(w) {
			format = FormatStyled
		}
	}
	var text string
	switch format {
	case FormatText:
		text = ret.Text()
	case FormatStyled:
		text = ret.Styled()
	case FormatHTML:
		text = ret.HTML()
	case FormatJSON:
		data, err := json.MarshalIndent(ret, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		text = string(data)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// exitStatus maps a result code onto a process exit status
func exitStatus(code exitcode.Code) int {
	switch {
	case code == exitcode.Success:
		return 0
	case code > 0 && code <= 255:
		return code.Int()
	default:
		return 1
	}
}

func statusError(code exitcode.Code) error {
	if status := exitStatus(code); status != 0 {
		return &ExitCodeError{Code: status}
	}
	return nil
}
