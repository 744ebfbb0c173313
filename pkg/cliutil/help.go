// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	cobra.AddTemplateFunc("getTerminalWidth", GetTerminalWidth)
	cobra.AddTemplateFunc("wrap", Wrap)
}

// GetTerminalWidth returns the width to wrap help text to: COLUMNS if the
// user set it, the detected width of stdout, 80 for an unmeasurable terminal,
// and 0 (no wrapping) when stdout is not a terminal.
func GetTerminalWidth() int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil {
		return cols
	}
	if cols, _, err := term.GetSize(1); err == nil {
		return cols
	}
	if term.IsTerminal(1) {
		return 80
	}
	return 0
}

// Wrap greedily wraps s to width w, preserving existing line breaks and
// leading indentation of each paragraph line.  w == 0 leaves s alone.
func Wrap(w int, s string) string {
	if w <= 0 {
		return s
	}
	var out strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteString("\n")
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		width := 0
		for j, word := range strings.Fields(line) {
			switch {
			case j == 0:
				out.WriteString(indent)
				width = len(indent)
			case width+1+len(word) > w:
				out.WriteString("\n" + indent)
				width = len(indent)
			default:
				out.WriteString(" ")
				width++
			}
			out.WriteString(word)
			width += len(word)
		}
	}
	return out.String()
}

// HelpTemplate is the help template for every putput command; it differs from
// cobra's stock template mostly in wrapping the long help to the terminal.
const HelpTemplate = `Usage: {{ .UseLine }}

{{- if .Short }}
{{ .Short }}
{{- end }}
{{- if .Long }}

{{ .Long | wrap getTerminalWidth | trimTrailingWhitespaces }}
{{- end }}
{{- if .Aliases }}

Aliases:
  {{ .NameAndAliases }}
{{- end }}
{{- if .HasExample }}

Examples:
{{ .Example }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Available Commands:
{{- range .Commands }}
  {{- if (or .IsAvailableCommand (eq .Name "help")) }}
    {{- "\n" }}  {{ rpad .Name .NamePadding }}   {{ .Short }}
  {{- end }}
{{- end }}
{{- end }}
{{- if .HasAvailableLocalFlags }}

Flags:
{{ getTerminalWidth | .LocalFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

Global Flags:
{{ getTerminalWidth | .InheritedFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Use "{{ .CommandPath }} [command] --help" for more information about a command.
{{- end }}
`
