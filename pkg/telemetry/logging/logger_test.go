package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("New() accepted an unknown level")
	}
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Error("New() accepted an unknown format")
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Info("document loaded", "sections", 4)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "document loaded" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["sections"] != float64(4) {
		t.Errorf("sections = %v", entry["sections"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered levels leaked: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx := WithDocument(context.Background(), "plans/release.cdx")
	ctx = WithOperation(ctx, "load")

	logger.InfoContext(ctx, "done")

	out := buf.String()
	if !strings.Contains(out, "document=plans/release.cdx") {
		t.Errorf("document field missing: %s", out)
	}
	if !strings.Contains(out, "operation=load") {
		t.Errorf("operation field missing: %s", out)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.With("workspace", "/tmp/ws").Info("scan complete")

	if !strings.Contains(buf.String(), "workspace=/tmp/ws") {
		t.Errorf("bound field missing: %s", buf.String())
	}
}

func TestNop(t *testing.T) {
	// Must not panic and must not write anywhere visible.
	Nop().Info("ignored")
}
