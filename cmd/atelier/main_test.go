package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PabloGalante/atelier-agent/internal/config"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-mode", "nop"))
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogValidate(t *testing.T) {
	out, err := run(t, "", "catalog", "validate")
	if err != nil {
		t.Fatalf("catalog validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "catalog OK: 15 courses, 4 journeys, 3 packages") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCatalogList(t *testing.T) {
	out, err := run(t, "", "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	for _, want := range []string{"sewing-basics", "digital-journey", "starter-package", "15%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestChatSession(t *testing.T) {
	out, err := run(t, "Hi there\n\nquit\n", "chat", "--lang", "en")
	if err != nil {
		t.Fatalf("chat: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Hello and welcome") {
		t.Errorf("missing welcome in %q", out)
	}
	if !strings.Contains(out, "atelier [assessment]:") {
		t.Errorf("missing first turn reply in %q", out)
	}
}

func TestBuildAppMemory(t *testing.T) {
	cfg := config.Default()
	cfg.ProseBackend = config.ProseMock

	a, err := buildApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildApp: %v", err)
	}
	defer a.Close()

	res, err := a.conv.ProcessTurn(context.Background(), "cli-test", "I want to learn sewing")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if res.Response == "" {
		t.Error("empty response")
	}
	leads, err := a.leads.ListLeads(context.Background(), 0)
	if err != nil || len(leads) != 0 {
		t.Errorf("unexpected leads %v, %v", leads, err)
	}
}
