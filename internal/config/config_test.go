package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMergeListUnionPreservesOrder(t *testing.T) {
	got := mergeList([]string{"a", "b"}, []string{"c", "a"}, nil)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMergeListRemoveSubtracts(t *testing.T) {
	got := mergeList([]string{"a", "b", "c"}, nil, []string{"b"})
	want := []string{"a", "c"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMergeCommandsReplaceDropsBase(t *testing.T) {
	base := CommandsSection{Allow: []string{"ls", "cat"}}
	overlay := CommandsSection{Allow: []string{"echo"}, Replace: true}
	merged := mergeCommands(base, overlay)
	if len(merged.Allow) != 1 || merged.Allow[0] != "echo" {
		t.Fatalf("got %v, want [echo]", merged.Allow)
	}
}

func TestMergeCommandsAdditiveUnion(t *testing.T) {
	base := CommandsSection{Allow: []string{"ls", "cat"}, Deny: []string{"shred"}}
	overlay := CommandsSection{Allow: []string{"echo"}, RemoveDeny: []string{"shred"}}
	merged := mergeCommands(base, overlay)
	if len(merged.Allow) != 3 {
		t.Fatalf("allow = %v, want 3 entries", merged.Allow)
	}
	if len(merged.Deny) != 0 {
		t.Fatalf("deny = %v, want empty after remove_deny", merged.Deny)
	}
}

func TestMergeSubcommandScalarOverride(t *testing.T) {
	base := SubcommandSection{ConfigEnvVar: "GIT_CONFIG_GLOBAL"}
	overlay := SubcommandSection{ConfigEnvVar: "MY_OVERRIDE"}
	merged := mergeSubcommand(base, overlay)
	if merged.ConfigEnvVar != "MY_OVERRIDE" {
		t.Errorf("got %q, want MY_OVERRIDE", merged.ConfigEnvVar)
	}
}

func TestLoadMergedMissingFileReturnsDefaults(t *testing.T) {
	doc, err := LoadMerged(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Commands.Allow) == 0 {
		t.Error("expected default allow list to be populated")
	}
}

func TestLoadMergedValidOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.toml")
	content := `
[commands]
allow = ["mytool"]
remove_ask = ["docker"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadMerged(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, c := range doc.Commands.Allow {
		if c == "mytool" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected mytool in merged allow list: %v", doc.Commands.Allow)
	}
	for _, c := range doc.Commands.Ask {
		if c == "docker" {
			t.Errorf("expected docker removed from ask list: %v", doc.Commands.Ask)
		}
	}
}

func TestLoadMergedInvalidOverlayReturnsDefaultsAndError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadMerged(path)
	if err == nil {
		t.Fatal("expected an error for invalid toml")
	}
	if len(doc.Commands.Allow) == 0 {
		t.Error("expected defaults to still be returned on invalid overlay")
	}
}

func TestBuildRegistryWiresSpecs(t *testing.T) {
	doc := Default()
	reg := BuildRegistry(doc)
	if reg.Resolve("git") == nil {
		t.Error("expected git spec to be wired")
	}
	if reg.Resolve("mkfs.ext4") == nil {
		t.Error("expected deny-always dotted-prefix resolution")
	}
	if _, ok := reg.Wrapper("sudo"); !ok {
		t.Error("expected sudo wrapper to be wired")
	}
}
