package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPacksUnionsSubcommandLists(t *testing.T) {
	dir := t.TempDir()
	pack := `
name: extra-git
git:
  read_only: ["stash list"]
`
	if err := os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}

	base := Default()
	merged, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, v := range merged.Git.ReadOnly {
		if v == "stash list" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected pack-added read-only entry in merged git section: %v", merged.Git.ReadOnly)
	}
	if len(merged.Git.ReadOnly) <= len(base.Git.ReadOnly) {
		t.Error("expected pack entries to be unioned, not to replace base")
	}
}

func TestLoadPacksSkipsDisabledFiles(t *testing.T) {
	dir := t.TempDir()
	pack := `
git:
  read_only: ["should-not-appear"]
`
	if err := os.WriteFile(filepath.Join(dir, "_disabled.yaml"), []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}

	base := Default()
	merged, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range merged.Git.ReadOnly {
		if v == "should-not-appear" {
			t.Error("expected underscore-prefixed pack file to be skipped")
		}
	}
}

func TestLoadPacksMissingDirReturnsBase(t *testing.T) {
	base := Default()
	merged, err := LoadPacks(filepath.Join(t.TempDir(), "nonexistent"), base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged.Git.ReadOnly) != len(base.Git.ReadOnly) {
		t.Error("expected base unchanged when packs dir is missing")
	}
}
