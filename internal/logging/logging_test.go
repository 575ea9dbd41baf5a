package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "json")
	l.Debug().Int("depth", 3).Msg("depth complete")

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if ev["level"] != "debug" || ev["depth"] != float64(3) || ev["message"] != "depth complete" {
		t.Errorf("event = %v", ev)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "json")
	l.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info written at warn level: %q", buf.String())
	}

	buf.Reset()
	l = New(&buf, "bogus", "json")
	l.Info().Msg("shown")
	if buf.Len() == 0 {
		t.Error("unknown level should fall back to info")
	}
}
