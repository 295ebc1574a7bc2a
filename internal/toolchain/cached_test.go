package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ferrite/internal/cache"
)

const rustcVersionLine = "rustc 1.79.0 (129f3b996 2024-06-10)\n"

func openTestCache(t *testing.T) *cache.DiskCache {
	t.Helper()
	c, err := cache.OpenAt(filepath.Join(t.TempDir(), "ferrite"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	return c
}

func TestCachedProbeMissThenHit(t *testing.T) {
	fakeExecutable(t, "rustc")
	c := openTestCache(t)

	first := &fakeRunner{out: []byte(rustcVersionLine)}
	tool, err := CachedProbe(context.Background(), first, "rustc", c)
	if err != nil {
		t.Fatalf("CachedProbe(miss): %v", err)
	}
	if first.calls != 1 {
		t.Fatalf("miss should run the tool once, ran %d times", first.calls)
	}
	if tool.Release != "1.79.0" {
		t.Fatalf("Release = %q", tool.Release)
	}

	second := &fakeRunner{out: []byte("rustc 9.9.9\n")}
	again, err := CachedProbe(context.Background(), second, "rustc", c)
	if err != nil {
		t.Fatalf("CachedProbe(hit): %v", err)
	}
	if second.calls != 0 {
		t.Fatalf("hit must not run the tool, ran %d times", second.calls)
	}
	if again.Version != tool.Version || again.Path != tool.Path {
		t.Fatalf("cached tool differs: %+v vs %+v", again, tool)
	}
}

func TestCachedProbeStaleBinaryReprobes(t *testing.T) {
	path := fakeExecutable(t, "rustc")
	c := openTestCache(t)

	first := &fakeRunner{out: []byte(rustcVersionLine)}
	if _, err := CachedProbe(context.Background(), first, "rustc", c); err != nil {
		t.Fatalf("CachedProbe: %v", err)
	}

	// Бинарь другого размера: запись в кеше должна протухнуть.
	// #nosec G306 -- the fixture must be executable for LookPath to find it
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o700); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}

	second := &fakeRunner{out: []byte("rustc 1.80.0 (0514789b8 2024-07-21)\n")}
	tool, err := CachedProbe(context.Background(), second, "rustc", c)
	if err != nil {
		t.Fatalf("CachedProbe after upgrade: %v", err)
	}
	if second.calls != 1 {
		t.Fatalf("stale entry must trigger a re-probe, ran %d times", second.calls)
	}
	if tool.Release != "1.80.0" {
		t.Fatalf("Release = %q after upgrade", tool.Release)
	}
}

func TestCachedProbeNilCache(t *testing.T) {
	fakeExecutable(t, "cargo")
	r := &fakeRunner{out: []byte("cargo 1.79.0 (ffa9cf99a 2024-06-03)\n")}

	tool, err := CachedProbe(context.Background(), r, "cargo", nil)
	if err != nil {
		t.Fatalf("CachedProbe(nil cache): %v", err)
	}
	if r.calls != 1 {
		t.Fatalf("expected one live probe, got %d", r.calls)
	}
	if tool.Name != "cargo" {
		t.Fatalf("Name = %q", tool.Name)
	}
}
