package registry

import (
	"testing"

	"github.com/anthropics/cc-toolgate/internal/specs"
)

func buildTestRegistry() *Registry {
	global := specs.NewSimpleSpec([]string{"ls", "cat"}, []string{"rm"}, nil)
	git := specs.NewGitSpec(specs.DefaultGitReadOnly, specs.DefaultGitMutating, nil, "")
	denyAlways := specs.NewDenyAlwaysSpec(specs.DefaultDenyAlwaysNames)

	return Build(BuildParams{
		Global:     global,
		DenyAlways: denyAlways,
		Subcommands: map[string]specs.CommandSpec{
			"git": git,
		},
		Wrappers: DefaultWrappers(),
	})
}

func TestResolveExactSubcommandSpec(t *testing.T) {
	r := buildTestRegistry()
	if r.Resolve("git") == nil {
		t.Fatal("expected a spec for git")
	}
}

func TestResolveDenyAlwaysDottedPrefix(t *testing.T) {
	r := buildTestRegistry()
	spec := r.Resolve("mkfs.ext4")
	ctx := specs.CommandContext{Argv: []string{"mkfs.ext4", "/dev/sdb"}}
	d, _ := spec.Evaluate(ctx)
	if d.String() != "deny" {
		t.Errorf("Evaluate(mkfs.ext4) decision = %v, want deny", d)
	}
}

func TestResolveFallsThroughToGlobal(t *testing.T) {
	r := buildTestRegistry()
	spec := r.Resolve("ls")
	d, _ := spec.Evaluate(specs.CommandContext{Argv: []string{"ls"}})
	if d.String() != "allow" {
		t.Errorf("Evaluate(ls) = %v, want allow", d)
	}
}

func TestWrapperLookup(t *testing.T) {
	r := buildTestRegistry()
	w, ok := r.Wrapper("sudo")
	if !ok {
		t.Fatal("expected sudo to be a registered wrapper")
	}
	if w.Floor.String() != "ask" {
		t.Errorf("sudo floor = %v, want ask", w.Floor)
	}
	if _, ok := r.Wrapper("not-a-wrapper"); ok {
		t.Error("expected not-a-wrapper to not be a wrapper")
	}
}
