package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Color shortcuts used across the command output.
var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Dim    = color.New(color.FgHiBlack).SprintFunc()
	Bold   = color.New(color.Bold).SprintFunc()
)

// Trace echoes an external command line to stdout, dimmed, with the shell
// trace prefix. Every git/patch invocation goes through this so the
// operator can follow (and replay) exactly what ran.
func Trace(cmd string) {
	fmt.Println(Dim("+ " + cmd))
}

// Error prints an error message with ✗ prefix.
func Error(format string, args ...any) {
	fmt.Printf(Red("✗")+" "+format+"\n", args...)
}

// Success prints a success message with ✓ prefix.
func Success(format string, args ...any) {
	fmt.Printf(Green("✓")+" "+format+"\n", args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	fmt.Printf(Yellow("⚠")+"  "+format+"\n", args...)
}

// Info prints a regular message.
func Info(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}
