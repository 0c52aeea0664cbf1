package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mode    string
		level   string
		wantErr bool
	}{
		{name: "development default", mode: ""},
		{name: "production", mode: ModeProduction, level: "warn"},
		{name: "short production alias", mode: "prod"},
		{name: "debug level", mode: ModeDevelopment, level: "debug"},
		{name: "bad level", mode: ModeDevelopment, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := New(tt.mode, tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := NewWriter(&buf, "warn")
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	l.Info("hidden")
	l.Warn("profile image unavailable", zap.String("language", "es"))
	_ = l.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "profile image unavailable") || !strings.Contains(out, `"language": "es"`) {
		t.Errorf("warn message missing or without fields: %q", out)
	}
}
