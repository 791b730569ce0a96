package generator

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeOutputDirectFile(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "abc.jpg")
	if err := os.WriteFile(want, []byte("jpg"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := normalizeOutput(dir, "abc", want)
	if err != nil {
		t.Fatalf("normalizeOutput: %v", err)
	}
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNormalizeOutputRenamesSequenceFile(t *testing.T) {
	dir := t.TempDir()
	seq := filepath.Join(dir, "abc.0000001.jpg")
	if err := os.WriteFile(seq, []byte("jpg"), 0o644); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, "abc.jpg")
	got, err := normalizeOutput(dir, "abc", want)
	if err != nil {
		t.Fatalf("normalizeOutput: %v", err)
	}
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Error("normalized file should exist under the requested name")
	}
	if _, err := os.Stat(seq); !os.IsNotExist(err) {
		t.Error("sequence file should be renamed away")
	}
}

func TestNormalizeOutputMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := normalizeOutput(dir, "abc", filepath.Join(dir, "abc.jpg")); err == nil {
		t.Error("expected error when no file was produced")
	}
}
