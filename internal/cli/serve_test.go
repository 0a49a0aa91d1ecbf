package cli

import (
	"context"
	"os"
	"strings"
	"testing"

	"quizlint/internal/findings"
	"quizlint/internal/reportserver"
)

// TestServeCommandPassesConfig ensures serve forwards parsed config to the server layer.
func TestServeCommandPassesConfig(t *testing.T) {
	repo := newTestRepo(t, nil)

	var gotConfig reportserver.Config
	var gotStore *findings.Store
	origServe := serveReport
	serveReport = func(_ context.Context, store *findings.Store, cfg reportserver.Config) error {
		gotConfig = cfg
		gotStore = store
		cfg.Ready(cfg.Addr)
		return nil
	}
	t.Cleanup(func() { serveReport = origServe })

	code, out, errOut := runCLI("serve", "--config", repo.configPath, "--addr", "127.0.0.1:5050")
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	if gotConfig.Addr != "127.0.0.1:5050" || gotConfig.Logger == nil {
		t.Fatalf("unexpected config: %+v", gotConfig)
	}
	if gotStore == nil || gotStore.Path() != repo.storePath {
		t.Fatalf("expected store at %s", repo.storePath)
	}
	if !strings.Contains(out, "Serving findings at http://127.0.0.1:5050") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(repo.storePath); err != nil {
		t.Fatalf("expected serve to create the findings database: %v", err)
	}
}

func TestServeCommandDefaultsAddrFromConfig(t *testing.T) {
	repo := newTestRepo(t, nil)
	writeTestFile(t, repo.configPath, "server:\n  addr: 127.0.0.1:9999\n")

	var gotAddr string
	origServe := serveReport
	serveReport = func(_ context.Context, _ *findings.Store, cfg reportserver.Config) error {
		gotAddr = cfg.Addr
		return nil
	}
	t.Cleanup(func() { serveReport = origServe })

	if code, _, errOut := runCLI("serve", "--config", repo.configPath); code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	if gotAddr != "127.0.0.1:9999" {
		t.Fatalf("expected config addr, got %q", gotAddr)
	}
}
