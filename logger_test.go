package frag3d

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestLoggerDefaultSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard everything")
	}
}

func TestLoggerWarnsOnBadMesh(t *testing.T) {

	buf := captureLogs(t)

	mesh := NewMesh(DirectionZ, []float64{0, 1}, []float64{0, 1}, []float64{0, 0, 0}, nil, NewSurfaceProp(NewColor(1, 1, 1, 1)))
	if frags := emit(mesh); len(frags) != 0 {
		t.Errorf("got %d fragments from a broken mesh", len(frags))
	}

	if out := buf.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "skipping mesh") {
		t.Errorf("log = %q", out)
	}

}

func TestLoggerRenderStats(t *testing.T) {

	buf := captureLogs(t)

	scene := NewScene()
	scene.Root.AddObject(NewTriangle(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewSurfaceProp(NewColor(1, 1, 1, 1))))

	var p recordingPainter
	if err := scene.Render(&p, 10, 10, nil); err != nil {
		t.Fatal(err)
	}

	if out := buf.String(); !strings.Contains(out, "rendered scene") || !strings.Contains(out, "emitted=1") {
		t.Errorf("log = %q", out)
	}

}
