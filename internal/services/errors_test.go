package services_test

import (
	"errors"
	"fmt"
	"testing"

	"animux/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := fmt.Errorf("exit status 2")
	err := services.Wrap(services.ErrExternalTool, "mkvmerge", "mux", "container build failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	want := "external tool error: mkvmerge: mux: container build failed: exit status 2"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if err.Error() != "external tool error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapValidation(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "mkvmerge", "mux", "output path required", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation marker, got %v", err)
	}
	if errors.Is(err, services.ErrExternalTool) {
		t.Fatal("marker must not collide with ErrExternalTool")
	}
}
