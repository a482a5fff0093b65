package result

import (
	"html"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// HTML renders an HTML summary: colored exit code, stdout and stderr blocks.
// Output is escaped and line breaks become <br>.
func (r *Result) HTML() string {
	builder := strings.Builder{}
	builder.WriteString("<p><strong>Exit Code:</strong> ")
	color := "red"
	if r.IsSuccessful() {
		color = "green"
	}
	builder.WriteString("<font color='" + color + "'>")
	builder.WriteString(strconv.Itoa(r.code.Int()))
	builder.WriteString("</font></p>")
	if r.stdoutText != "" {
		builder.WriteString("<p><strong>STDOUT:</strong></p><p>")
		builder.WriteString(htmlLines(r.stdoutText))
		builder.WriteString("</p>")
	}
	if r.stderrText != "" {
		builder.WriteString("<p><strong>STDERR:</strong></p><p><font color='red'>")
		builder.WriteString(htmlLines(r.stderrText))
		builder.WriteString("</font></p>")
	}
	return builder.String()
}

// Styled renders the summary for a terminal
func (r *Result) Styled() string {
	codeStyle := failureStyle
	if r.IsSuccessful() {
		codeStyle = successStyle
	}
	return r.render(labelStyle.Render, codeStyle.Render, failureStyle.Render)
}

// Text renders the summary without styling
func (r *Result) Text() string {
	plain := func(s ...string) string { return strings.Join(s, " ") }
	return r.render(plain, plain, plain)
}

type renderFn func(strs ...string) string

func (r *Result) render(label, code, stderr renderFn) string {
	builder := strings.Builder{}
	builder.WriteString(label("Exit Code:"))
	builder.WriteString(" ")
	builder.WriteString(code(strconv.Itoa(r.code.Int())))
	builder.WriteString("\n")
	if r.stdoutText != "" {
		builder.WriteString(label("STDOUT:"))
		builder.WriteString("\n")
		builder.WriteString(r.stdoutText)
		builder.WriteString("\n")
	}
	if r.stderrText != "" {
		builder.WriteString(label("STDERR:"))
		builder.WriteString("\n")
		builder.WriteString(stderr(r.stderrText))
		builder.WriteString("\n")
	}
	return builder.String()
}

func htmlLines(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}
