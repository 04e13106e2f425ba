package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trkStyle       = lipgloss.NewStyle().Faint(true)
	undefinedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	defStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
)

func NewLine(w io.Writer, path string, steps int) {
	fmt.Fprintf(w, "%s  %s (%s)\n", newStyle.Render("new"), path, plural(steps, "step"))
}

func TrkLine(w io.Writer, path string, steps int) {
	fmt.Fprintf(w, "%s  %s (%s)\n", trkStyle.Render("trk"), path, plural(steps, "step"))
}

func SummaryLine(w io.Writer, steps, files int) {
	fmt.Fprintf(w, "bound %s in %s\n", plural(steps, "step"), plural(files, "file"))
}

// MatchResult prints the definition a single step resolved to and its
// arguments.
func MatchResult(w io.Writer, definition string, args []string, kwargs map[string]string, names []string) {
	fmt.Fprintln(w, defStyle.Render(definition))
	for i, a := range args {
		fmt.Fprintf(w, "  $%d = %q\n", i+1, a)
	}
	for _, name := range names {
		fmt.Fprintf(w, "  %s = %q\n", name, kwargs[name])
	}
}

func NoMatch(w io.Writer) {
	fmt.Fprintln(w, undefinedStyle.Render("no match"))
}

func FeatureHeader(w io.Writer, title, path string) {
	fmt.Fprintln(w, headerStyle.Render(title)+"  "+trkStyle.Render(path))
}

func ScenarioHeader(w io.Writer, title string) {
	fmt.Fprintln(w, "  "+headerStyle.Render(title))
}

// StepLine prints one step with its definition, or "undefined" when
// definition is empty.
func StepLine(w io.Writer, line int, text, definition string) {
	label := undefinedStyle.Render("undefined")
	if definition != "" {
		label = defStyle.Render(definition)
	}
	fmt.Fprintf(w, "    %4d  %s  %s\n", line, text, label)
}

func ListRow(w io.Writer, location, definition, text string, locWidth, defWidth int) {
	fmt.Fprintf(w, "%-*s  %s  %s\n", locWidth, location, defStyle.Render(definition)+padding(definition, defWidth), text)
}

func UsageLine(w io.Writer, location, text string) {
	fmt.Fprintf(w, "  %s  %s\n", location, trkStyle.Render(text))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func padding(s string, width int) string {
	return strings.Repeat(" ", max(0, width-len(s)))
}
