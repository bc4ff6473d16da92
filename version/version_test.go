package version

import (
	"strings"
	"testing"

	"github.com/jongio/azd-dotenv/testutil"
)

func TestNewDefaults(t *testing.T) {
	info := New("azd-dotenv")
	if info.Version != "0.0.0-dev" {
		t.Errorf("unexpected version: %s", info.Version)
	}
	if info.Name != "azd-dotenv" {
		t.Errorf("unexpected name: %s", info.Name)
	}
}

func TestString(t *testing.T) {
	info := &Info{Name: "azd-dotenv", Version: "1.0.0", GitCommit: "abc123", BuildDate: "2026-01-01"}
	s := info.String()
	for _, want := range []string{"azd-dotenv", "1.0.0", "abc123", "2026-01-01"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q: %s", want, s)
		}
	}
}

func TestCommand_Quiet(t *testing.T) {
	info := &Info{Name: "azd-dotenv", Version: "1.2.3"}
	cmd := NewCommand(info, nil)
	cmd.SetArgs([]string{"--quiet"})

	output := testutil.CaptureOutput(t, func() error {
		return cmd.Execute()
	})
	if strings.TrimSpace(output) != "1.2.3" {
		t.Fatalf("expected bare version, got %q", output)
	}
}

func TestCommand_JSON(t *testing.T) {
	info := &Info{Name: "azd-dotenv", Version: "1.2.3"}
	format := "json"
	cmd := NewCommand(info, &format)

	output := testutil.CaptureOutput(t, func() error {
		return cmd.Execute()
	})
	if !strings.Contains(output, `"version": "1.2.3"`) {
		t.Fatalf("expected JSON output, got %q", output)
	}
}

func TestCommand_Default(t *testing.T) {
	info := &Info{Name: "azd-dotenv", Version: "1.2.3", BuildDate: "2026-01-01", GitCommit: "abc123"}
	cmd := NewCommand(info, nil)

	output := testutil.CaptureOutput(t, func() error {
		return cmd.Execute()
	})
	for _, want := range []string{"azd-dotenv Version", "1.2.3", "2026-01-01", "abc123"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
}
