package console

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
)

func TestReporter_Lines(t *testing.T) {
	tests := []struct {
		name string
		emit func(r *Reporter)
		want string
	}{
		{name: "info", emit: func(r *Reporter) { r.Info("git already installed") }, want: "✅ git already installed\n"},
		{name: "warn", emit: func(r *Reporter) { r.Warn("cmake not found") }, want: "⚠️  cmake not found\n"},
		{name: "error", emit: func(r *Reporter) { r.Error("Python 3.7+ required") }, want: "❌ Python 3.7+ required\n"},
		{name: "step", emit: func(r *Reporter) { r.Step("Checking git...") }, want: "\n🔧 Checking git...\n"},
		{name: "fields", emit: func(r *Reporter) { r.Info("done", interfaces.F("path", "/tmp/x")) }, want: "✅ done (path=/tmp/x)\n"},
		{name: "debug hidden", emit: func(r *Reporter) { r.Debug("host detected", interfaces.F("os", "linux")) }, want: ""},
		{name: "success banner", emit: func(r *Reporter) { r.Banner("Installation completed successfully!", true) }, want: "\n🎉 Installation completed successfully!\n"},
		{name: "failure banner", emit: func(r *Reporter) { r.Banner("Installation failed.", false) }, want: "\n❌ Installation failed.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(NewReporter(&buf, termenv.Ascii, nil))
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestReporter_Header(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, termenv.Ascii, nil).Header("Installing Python Packages")

	rule := strings.Repeat("=", 60)
	want := "\n" + rule + "\n  Installing Python Packages\n" + rule + "\n"
	if buf.String() != want {
		t.Errorf("header = %q, want %q", buf.String(), want)
	}
}

func TestReporter_List(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, termenv.Ascii, nil).List("Next steps:", []string{"Build the project: idf.py build", "Monitor output: ./monitor.sh"})

	want := "\nNext steps:\n1. Build the project: idf.py build\n2. Monitor output: ./monitor.sh\n"
	if buf.String() != want {
		t.Errorf("list = %q, want %q", buf.String(), want)
	}
}

func TestReporter_ColorProfile(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, termenv.ANSI, nil).Error("boom")

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestReporter_RunLog(t *testing.T) {
	dir := t.TempDir()
	log, err := OpenRunLog(dir, "idf-bootstrap")
	if err != nil {
		t.Fatalf("OpenRunLog() error = %v", err)
	}

	var buf bytes.Buffer
	r := NewReporter(&buf, termenv.Ascii, log)
	if !strings.HasPrefix(filepath.Base(r.LogPath()), "idf-bootstrap-") || filepath.Dir(r.LogPath()) != dir {
		t.Errorf("LogPath() = %q", r.LogPath())
	}

	r.Debug("stage finished", interfaces.F("stage", "packages"))
	r.Warn("Failed to install pyyaml")
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(r.LogPath())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	for _, want := range []string{"DEBUG stage finished stage=packages", "WARN  Failed to install pyyaml", "log ended"} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q:\n%s", want, content)
		}
	}

	// writes after Close are dropped
	r.Info("late")
	if buf.Len() == 0 {
		t.Error("terminal output should still work after Close")
	}
}

func TestRunLog_NilSafe(t *testing.T) {
	var log *RunLog
	log.Write("INFO", "ignored")
	if log.Path() != "" {
		t.Error("nil log should have no path")
	}
	if err := log.Close(); err != nil {
		t.Errorf("Close() on nil log error = %v", err)
	}
}
