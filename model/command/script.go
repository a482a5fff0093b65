package command

import "strings"

const exportPath = "export PATH=$PATH:"

// Flatten renders the command as a single script: PATH exports for Dir and
// Dirs, then one export per environment entry, then the script body.
func Flatten(cmd *Command) string {
	if cmd == nil {
		return ""
	}
	builder := strings.Builder{}
	if cmd.dir != "" {
		builder.WriteString(exportPath)
		builder.WriteString(cmd.dir)
		builder.WriteString("\n")
	}
	for _, dir := range cmd.dirs {
		builder.WriteString(exportPath)
		builder.WriteString(dir)
		builder.WriteString("\n")
	}
	for _, entry := range cmd.env {
		builder.WriteString("export ")
		builder.WriteString(entry)
		builder.WriteString("\n")
	}
	builder.WriteString(cmd.script)
	return builder.String()
}

// JoinLines joins lines with a trailing line break after each one
func JoinLines(lines []string) string {
	builder := strings.Builder{}
	for _, line := range lines {
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}
