package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{" INFO ", logrus.InfoLevel},
		{"", logrus.WarnLevel},
		{"chatty", logrus.WarnLevel},
	}
	for _, tt := range tests {
		if got := New(tt.in, FormatText, &bytes.Buffer{}).GetLevel(); got != tt.want {
			t.Fatalf("New(%q) level = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", "json", &buf)
	Component(log, "advisor").Info("fallback used")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "advisor" || entry["msg"] != "fallback used" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	New("warn", "text", &buf).Warn("model unavailable")
	if !strings.Contains(buf.String(), "model unavailable") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("text output = %q", buf.String())
	}
}
