package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	boldColor    = color.New(color.Bold)
	dimColor     = color.New(color.Faint)
)

// Success prints a success message in green.
func Success(format string, a ...any) {
	successColor.Fprintf(os.Stdout, "✓ "+format+"\n", a...)
}

// Error prints an error message in red.
func Error(format string, a ...any) {
	errorColor.Fprintf(os.Stderr, "✗ "+format+"\n", a...)
}

// Warning prints a warning message in yellow.
func Warning(format string, a ...any) {
	warningColor.Fprintf(os.Stderr, "⚠ "+format+"\n", a...)
}

// Info prints an info message in cyan.
func Info(format string, a ...any) {
	infoColor.Fprintf(os.Stderr, "ℹ "+format+"\n", a...)
}

// Bold formats text in bold.
func Bold(format string, a ...any) string {
	return boldColor.Sprintf(format, a...)
}

// Dim formats text in a faint style.
func Dim(format string, a ...any) string {
	return dimColor.Sprintf(format, a...)
}

// Swatch renders a colored dot for a #rrggbb value.
func Swatch(hex string) string {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(hex) != 7 {
		return "●"
	}
	return color.RGB(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff)).Sprint("●")
}

// Countdown renders the seconds left, red in the last five.
func Countdown(remaining int) string {
	s := fmt.Sprintf("%2ds", remaining)
	if remaining <= 5 {
		return errorColor.Sprint(s)
	}
	return dimColor.Sprint(s)
}

// FormatCode splits a code in two groups for readability.
func FormatCode(code string) string {
	if len(code) < 6 {
		return code
	}
	mid := len(code) / 2
	return code[:mid] + " " + code[mid:]
}

// PromptConfirm asks for user confirmation and returns true if confirmed.
func PromptConfirm(message string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", message)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
