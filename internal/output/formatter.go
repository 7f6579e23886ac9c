// Package output renders command results as a styled board, JSON or plain
// tab-separated lines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/manav03panchal/weekly/internal/errors"
)

type Format string

const (
	FormatCLI   Format = "cli"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// DefaultWidth applies when the writer is not a terminal.
const DefaultWidth = 80

// parseChoice normalizes s and checks it against choices. Empty input
// selects the first choice.
func parseChoice[T ~string](field, s string, choices ...T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return choices[0], nil
	}
	if slices.Contains(choices, v) {
		return v, nil
	}
	names := make([]string, len(choices))
	for i, c := range choices {
		names[i] = string(c)
	}
	return "", errors.NewUserErrorWithField(field, s, "unknown "+field,
		"Use "+strings.Join(names[:len(names)-1], ", ")+" or "+names[len(names)-1]+".")
}

func ParseFormat(s string) (Format, error) {
	return parseChoice("format", s, FormatCLI, FormatJSON, FormatPlain)
}

func ParseColorMode(s string) (ColorMode, error) {
	return parseChoice("color", s, ColorAuto, ColorAlways, ColorNever)
}

// Formatter is the shared writer behind the cli, json and plain outputs.
type Formatter struct {
	Writer    io.Writer
	Format    Format
	ColorMode ColorMode
}

func NewFormatter() *Formatter {
	return &Formatter{Writer: os.Stdout, Format: FormatCLI, ColorMode: ColorAuto}
}

func (f *Formatter) fd() (uintptr, bool) {
	file, ok := f.Writer.(*os.File)
	if !ok {
		return 0, false
	}
	return file.Fd(), isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// IsTerminal reports whether output goes to an interactive terminal.
func (f *Formatter) IsTerminal() bool {
	_, tty := f.fd()
	return tty
}

// IsColorEnabled resolves ColorAuto against the terminal check.
func (f *Formatter) IsColorEnabled() bool {
	if f.ColorMode == ColorAuto || f.ColorMode == "" {
		return f.IsTerminal()
	}
	return f.ColorMode == ColorAlways
}

// Width is the terminal width, or DefaultWidth.
func (f *Formatter) Width() int {
	if fd, tty := f.fd(); tty {
		if cols, _, err := term.GetSize(int(fd)); err == nil && cols > 0 {
			return cols
		}
	}
	return DefaultWidth
}

func (f *Formatter) Print(a ...any)                 { fmt.Fprint(f.Writer, a...) }
func (f *Formatter) Println(a ...any)               { fmt.Fprintln(f.Writer, a...) }
func (f *Formatter) Printf(format string, a ...any) { fmt.Fprintf(f.Writer, format, a...) }

// JSON writes v indented by two spaces.
func (f *Formatter) JSON(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatAgo describes how long before now t was, e.g. "5 minutes ago".
func FormatAgo(t, now time.Time) string {
	if now.Sub(t) < time.Minute {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
