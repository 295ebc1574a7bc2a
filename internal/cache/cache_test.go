package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := OpenAt(filepath.Join(t.TempDir(), "ferrite"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}

	key := KeyOf("rustc", "/usr/bin/rustc")
	in := &ToolPayload{
		Schema:   SchemaVersion,
		Name:     "rustc",
		Path:     "/usr/bin/rustc",
		Version:  "1.79.0",
		Release:  "1.79.0",
		Commit:   "129f3b99",
		Date:     "2024-06-10",
		BinSize:  12345,
		BinMTime: 987654321,
		ProbedAt: time.Now().Unix(),
	}
	if err := c.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out ToolPayload
	ok, err := c.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if out.Version != in.Version || out.Path != in.Path || out.BinSize != in.BinSize {
		t.Fatalf("payload mismatch: got %+v, want %+v", out, *in)
	}
}

func TestGetMissingIsNotError(t *testing.T) {
	c, err := OpenAt(filepath.Join(t.TempDir(), "ferrite"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}

	var out ToolPayload
	ok, err := c.Get(KeyOf("cargo", "/nonexistent"), &out)
	if err != nil {
		t.Fatalf("Get on empty cache: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestGetRejectsOldSchema(t *testing.T) {
	c, err := OpenAt(filepath.Join(t.TempDir(), "ferrite"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}

	key := KeyOf("rustc")
	if err := c.Put(key, &ToolPayload{Schema: 0, Name: "rustc"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out ToolPayload
	ok, err := c.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("entry with stale schema must read as a miss")
	}
}

func TestKeyOfSeparatesParts(t *testing.T) {
	// "ab"+"c" и "a"+"bc" не должны давать один ключ
	if KeyOf("ab", "c") == KeyOf("a", "bc") {
		t.Fatal("adjacent parts glued into the same key")
	}
	if KeyOf("rustc") == KeyOf("cargo") {
		t.Fatal("distinct tools share a key")
	}
}

func TestFresh(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "rustc")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o700); err != nil { // #nosec G306 -- test fixture must be executable
		t.Fatalf("write fixture: %v", err)
	}
	info, err := os.Stat(bin)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	p := &ToolPayload{
		Schema:   SchemaVersion,
		Path:     bin,
		BinSize:  info.Size(),
		BinMTime: info.ModTime().UnixNano(),
	}
	if !p.Fresh() {
		t.Fatal("payload matching the binary stat must be fresh")
	}

	// Изменение бинаря инвалидирует запись.
	if err := os.WriteFile(bin, []byte("#!/bin/sh\nexit 1\n"), 0o700); err != nil { // #nosec G306 -- test fixture must be executable
		t.Fatalf("rewrite fixture: %v", err)
	}
	if p.Fresh() {
		t.Fatal("payload must go stale after the binary changes")
	}

	if (&ToolPayload{Schema: SchemaVersion, Path: filepath.Join(dir, "missing")}).Fresh() {
		t.Fatal("payload for a missing binary must be stale")
	}
	var nilPayload *ToolPayload
	if nilPayload.Fresh() {
		t.Fatal("nil payload must be stale")
	}
}

func TestDropAll(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ferrite")
	c, err := OpenAt(root)
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	if err := c.Put(KeyOf("rustc"), &ToolPayload{Schema: SchemaVersion, Name: "rustc"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("cache dir should be gone, stat err = %v", err)
	}

	// Повторный сброс несуществующего каталога не ошибка.
	if err := c.DropAll(); err != nil {
		t.Fatalf("second DropAll: %v", err)
	}
}
