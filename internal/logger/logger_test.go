package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWriterLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "info level", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWriter(&buf, tt.verbose, false)
			l.Debug("worker started", "id", 3)
			l.Info("search started", "workers", 8)

			out := buf.String()
			if !strings.Contains(out, "search started") || !strings.Contains(out, "workers=8") {
				t.Errorf("info record missing: %q", out)
			}
			if got := strings.Contains(out, "worker started"); got != tt.wantDebug {
				t.Errorf("debug record present = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l == nil || l.Logger == nil {
		t.Fatal("Discard returned nil logger")
	}
	l.Error("dropped")
}
