// Package errors implements the compiler's diagnostic reporting: a
// structured CompilerError with Rust-like source-context rendering, and
// a Buffer that accumulates diagnostics across a compilation pass and
// raises them together as one aggregate failure.
package errors

import (
	"fmt"
	"strings"

	"compiler/internal/ast"
	"github.com/fatih/color"
)

// Level represents the severity of a diagnostic.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
	Help    Level = "help"
)

// CompilerError is a structured diagnostic with suggestions and context.
type CompilerError struct {
	Level       Level
	Code        string        // error code like E0001
	Message     string        // primary error message
	Ref         ast.SourceRef // location in source
	Length      int           // length of the problematic region
	Suggestions []Suggestion  // suggested fixes
	Notes       []string      // additional context notes
	HelpText    string        // help text for the error
}

func (e CompilerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s[%s]: %s (%s)", e.Level, e.Code, e.Message, e.Ref)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Level, e.Message, e.Ref)
}

// Suggestion is a suggested fix attached to a CompilerError.
type Suggestion struct {
	Message     string        // description of the suggestion
	Replacement string        // suggested replacement text (optional)
	Ref         ast.SourceRef // position to apply the fix (optional)
	Length      int           // length of text to replace (optional)
}

// Buffer accumulates CompilerErrors across one compilation pass. The
// zero value is ready to use.
type Buffer struct {
	errors []CompilerError
}

// Push appends err to the buffer.
func (b *Buffer) Push(err CompilerError) { b.errors = append(b.errors, err) }

// Empty reports whether no diagnostics have been pushed.
func (b *Buffer) Empty() bool { return len(b.errors) == 0 }

// Errors returns every accumulated diagnostic.
func (b *Buffer) Errors() []CompilerError { return b.errors }

// Raise returns the buffer as a single aggregate error if non-empty,
// preserving every diagnostic, or nil if the pass produced none. This is
// the "errors accumulated... raised as a single aggregate" propagation
// policy.
func (b *Buffer) Raise() error {
	if b.Empty() {
		return nil
	}
	return AggregateError{Errors: b.errors}
}

// AggregateError wraps every diagnostic from one failed compilation pass.
type AggregateError struct {
	Errors []CompilerError
}

func (a AggregateError) Error() string {
	lines := make([]string, len(a.Errors))
	for i, e := range a.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// Reporter formats CompilerErrors against the source they were found in.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a Reporter for a file's contents.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// FormatError formats a single diagnostic with Rust-like styling:
// a colored header, a `-->` location line, surrounding source context,
// an underline marker, then suggestions/notes/help.
func (r *Reporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := r.levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&result, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&result, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	line := err.Ref.Line
	lineNumberWidth := r.lineNumberWidth(line)
	indent := strings.Repeat(" ", lineNumberWidth)

	fmt.Fprintf(&result, "%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, line, err.Ref.Column)
	fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))

	if line > 1 && line-1 < len(r.lines) {
		fmt.Fprintf(&result, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, line-1)), dim("│"), r.lines[line-2])
	}

	if line <= len(r.lines) && line > 0 {
		content := r.lines[line-1]
		fmt.Fprintf(&result, "%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, line)), dim("│"), content)
		fmt.Fprintf(&result, "%s %s %s\n", indent, dim("│"), r.marker(err.Ref.Column, err.Length, err.Level))
	}

	if line < len(r.lines) {
		fmt.Fprintf(&result, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, line+1)), dim("│"), r.lines[line])
	}

	if len(err.Suggestions) > 0 {
		fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		for i, s := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(&result, "%s %s %s: %s\n", indent, suggestionColor("help"), suggestionColor("try"), s.Message)
			} else {
				fmt.Fprintf(&result, "%s %s %s\n", indent, suggestionColor("    "), s.Message)
			}
			if s.Replacement != "" {
				fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))
				replacement := strings.ReplaceAll(s.Replacement, "\n", fmt.Sprintf("\n%s %s ", indent, dim("│")))
				fmt.Fprintf(&result, "%s %s %s\n", indent, suggestionColor("│"), suggestionColor(replacement))
			}
		}
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note)
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText)
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll formats every diagnostic in agg, in order, as the single
// multi-line user-visible failure spec §7 describes.
func (r *Reporter) FormatAll(agg AggregateError) string {
	var result strings.Builder
	for _, e := range agg.Errors {
		result.WriteString(r.FormatError(e))
	}
	return result.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (r *Reporter) marker(column, length int, level Level) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))

	markerChar := "^"
	var markerColor func(...interface{}) string
	switch level {
	case Warning:
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		markerColor = color.New(color.FgRed, color.Bold).SprintFunc()
	}

	return spaces + markerColor(strings.Repeat(markerChar, length))
}

func (r *Reporter) lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
