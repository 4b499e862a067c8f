package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"reelsmith/internal/pipeline"
)

func writeTestConfig(t *testing.T, mode string) string {
	t.Helper()
	dir := t.TempDir()
	target := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[paths]\nvideos_dir = %q\n\n[pipeline]\nmode = %q\n",
		filepath.Join(dir, "videos"), mode)
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return target
}

func TestBuildComponentsModeOverrideIsCaseInsensitive(t *testing.T) {
	t.Setenv("REELSMITH_VIDEOGEN_API_KEY", "test-key")
	target := writeTestConfig(t, "brief")

	components, err := buildComponents(target, "Render")
	if err != nil {
		t.Fatalf("buildComponents with mixed-case override failed: %v", err)
	}
	if got := components.orch.Mode(); got != pipeline.ModeRender {
		t.Fatalf("mode = %q, want render", got)
	}
	if components.store == nil {
		t.Fatal("render mode must construct a media store")
	}
}

func TestBuildComponentsModeOverrideStillValidated(t *testing.T) {
	target := writeTestConfig(t, "brief")

	if _, err := buildComponents(target, "slideshow"); err == nil {
		t.Fatal("expected error for unknown mode override")
	}
}

func TestBuildComponentsRenderOverrideRequiresVideoKey(t *testing.T) {
	t.Setenv("REELSMITH_VIDEOGEN_API_KEY", "")
	target := writeTestConfig(t, "brief")

	if _, err := buildComponents(target, "render"); err == nil {
		t.Fatal("expected error for render override without a videogen key")
	}
}
