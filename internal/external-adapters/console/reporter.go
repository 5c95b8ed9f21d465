// Package console renders installer progress on a terminal and mirrors it to a run log.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
)

const ruleWidth = 60

// Reporter implements interfaces.Reporter with colored, emoji-prefixed lines
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
	log *RunLog

	header  lipgloss.Style
	step    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	faint   lipgloss.Style
}

// NewReporter creates a reporter writing to out with the given color profile.
// Use termenv.Ascii to disable styling. log may be nil.
func NewReporter(out io.Writer, profile termenv.Profile, log *RunLog) *Reporter {
	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return &Reporter{
		out:     out,
		log:     log,
		header:  renderer.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		step:    renderer.NewStyle().Foreground(lipgloss.Color("4")),
		success: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    renderer.NewStyle().Foreground(lipgloss.Color("3")),
		fail:    renderer.NewStyle().Foreground(lipgloss.Color("1")),
		faint:   renderer.NewStyle().Faint(true),
	}
}

// LogPath returns the run log path, or "" when no log is attached
func (r *Reporter) LogPath() string {
	return r.log.Path()
}

// Close closes the run log
func (r *Reporter) Close() error {
	return r.log.Close()
}

// Debug records msg in the run log only
func (r *Reporter) Debug(msg string, fields ...interfaces.Field) {
	r.log.Write("DEBUG", msg, fields...)
}

// Info prints a success line
func (r *Reporter) Info(msg string, fields ...interfaces.Field) {
	r.log.Write("INFO", msg, fields...)
	r.println(r.success.Render("✅ "+msg) + r.suffix(fields))
}

// Warn prints a warning line
func (r *Reporter) Warn(msg string, fields ...interfaces.Field) {
	r.log.Write("WARN", msg, fields...)
	r.println(r.warn.Render("⚠️  "+msg) + r.suffix(fields))
}

// Error prints an error line
func (r *Reporter) Error(msg string, fields ...interfaces.Field) {
	r.log.Write("ERROR", msg, fields...)
	r.println(r.fail.Render("❌ "+msg) + r.suffix(fields))
}

// Header prints a section title between two rules
func (r *Reporter) Header(title string) {
	r.log.Write("INFO", "== "+title+" ==")
	rule := strings.Repeat("=", ruleWidth)
	r.println("\n" + r.header.Render(rule) + "\n" + r.header.Render("  "+title) + "\n" + r.header.Render(rule))
}

// Step announces an action
func (r *Reporter) Step(msg string) {
	r.log.Write("STEP", msg)
	r.println("\n" + r.step.Render("🔧 "+msg))
}

// List prints a titled, numbered list
func (r *Reporter) List(title string, items []string) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.header.Render(title))
	for i, item := range items {
		r.log.Write("INFO", fmt.Sprintf("%s %d. %s", title, i+1, item))
		fmt.Fprintf(&b, "\n%d. %s", i+1, item)
	}
	r.println(b.String())
}

// Banner prints the final outcome of the run
func (r *Reporter) Banner(msg string, success bool) {
	style, prefix, level := r.success, "🎉 ", "INFO"
	if !success {
		style, prefix, level = r.fail, "❌ ", "ERROR"
	}
	r.log.Write(level, msg)
	r.println("\n" + style.Bold(true).Render(prefix+msg))
}

// suffix renders fields faintly after the message, or "" when there are none
func (r *Reporter) suffix(fields []interfaces.Field) string {
	f := formatFields(fields)
	if f == "" {
		return ""
	}
	return " " + r.faint.Render("("+f+")")
}

func (r *Reporter) println(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, s)
}
