package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootHelp(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"--help"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	output := out.String()
	if !strings.Contains(output, "Usage:") {
		t.Fatalf("expected usage header, got %q", output)
	}
	for _, cmd := range commands {
		if !strings.Contains(output, cmd.Name) {
			t.Fatalf("expected command %q in output", cmd.Name)
		}
	}
}

func TestNoArgsShowsUsage(t *testing.T) {
	var out, err bytes.Buffer
	code := Run(nil, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"nope"}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(err.String(), "Unknown command") {
		t.Fatalf("expected unknown command error, got %q", err.String())
	}
}

func TestCommandHelp(t *testing.T) {
	for _, cmd := range commands {
		var out, errBuf bytes.Buffer
		code := Run([]string{cmd.Name, "--help"}, &out, &errBuf)
		if code != ExitOK {
			t.Fatalf("%s --help: expected exit %d, got %d", cmd.Name, ExitOK, code)
		}
		if !strings.Contains(out.String(), "Usage:") {
			t.Fatalf("%s --help: expected usage, got %q", cmd.Name, out.String())
		}
	}
}

func TestStudyRequiresDeckFlag(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := Run([]string{"study"}, &out, &errBuf)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(errBuf.String(), "--deck") {
		t.Fatalf("expected missing flag message, got %q", errBuf.String())
	}
}
