package services_test

import (
	"context"
	"testing"

	"reelsmith/internal/services"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-123")
	id, ok := services.RunIDFromContext(ctx)
	if !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %q ok=%v", id, ok)
	}
}

func TestEmptyValuesAreIgnored(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "")
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id for empty value")
	}
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage for empty value")
	}
}

func TestStageRoundTrip(t *testing.T) {
	ctx := services.WithStage(context.Background(), "scene_planner")
	stage, ok := services.StageFromContext(ctx)
	if !ok || stage != "scene_planner" {
		t.Fatalf("unexpected stage: %q ok=%v", stage, ok)
	}
}
