package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := LogConfig{Level: "warn", Format: "text"}.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "file", "a.chi")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record logged at warn level:\n%s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "file=a.chi") {
		t.Errorf("unexpected text output:\n%s", out)
	}

	buf.Reset()
	log = LogConfig{Level: "debug", Format: "json"}.NewLogger(&buf)
	log.Debug("parsed", "nodes", 12)
	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON record %q: %v", buf.String(), err)
	}
	if rec["msg"] != "parsed" || rec["level"] != "DEBUG" || rec["nodes"] != float64(12) {
		t.Errorf("record = %v", rec)
	}
}
