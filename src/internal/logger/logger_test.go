package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut := log.Writer()
	prevFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		SetLevel("info")
	})
	return &buf
}

func TestSanitizePayloadMasksCustomerIdentity(t *testing.T) {
	payload := map[string]any{
		"nombreCompleto":     "Ana Torres",
		"documentoIdentidad": "45678912",
		"telefono":           "987654321",
		"nested": map[string]any{
			"Channel-Key": "secret",
		},
	}

	sanitized, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatal("expected sanitized payload to be a map")
	}
	if sanitized["nombreCompleto"] != "Ana Torres" {
		t.Fatalf("expected name to be kept, got %v", sanitized["nombreCompleto"])
	}
	if sanitized["documentoIdentidad"] != "******12" {
		t.Fatalf("expected masked document id, got %v", sanitized["documentoIdentidad"])
	}
	if sanitized["telefono"] != "******21" {
		t.Fatalf("expected masked phone, got %v", sanitized["telefono"])
	}
	nested := sanitized["nested"].(map[string]any)
	if nested["Channel-Key"] != "******" {
		t.Fatalf("expected short secret fully masked, got %v", nested["Channel-Key"])
	}
}

func TestSanitizePayloadUnmarshalableValue(t *testing.T) {
	if got := SanitizePayload(make(chan int)); got != "<unavailable>" {
		t.Fatalf("expected <unavailable>, got %v", got)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLog(t)
	SetLevel("warn")

	Debug("debug line", nil)
	Info("info line", nil)
	Warn("warn line", nil, Fields{"k": "v"})
	Error("error line", nil, nil)

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Fatalf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, `WARN warn line {"k":"v"}`) {
		t.Fatalf("expected warn line, got %q", out)
	}
	if !strings.Contains(out, "ERROR error line") {
		t.Fatalf("expected error line, got %q", out)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := ParseLevel("verbose"); got != LevelInfo {
		t.Fatalf("expected info, got %d", got)
	}
	if got := ParseLevel(" DEBUG "); got != LevelDebug {
		t.Fatalf("expected debug, got %d", got)
	}
}
