package specs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anthropics/cc-toolgate/internal/decision"
)

func TestSimpleSpecBasenameLookup(t *testing.T) {
	s := NewSimpleSpec([]string{"ls", "cat"}, []string{"rm"}, []string{"curl"})

	cases := []struct {
		argv []string
		want decision.Decision
	}{
		{[]string{"ls", "-la"}, decision.Allow},
		{[]string{"rm", "-rf", "/tmp/x"}, decision.Ask},
		{[]string{"curl", "http://evil"}, decision.Deny},
		{[]string{"unknown-tool"}, decision.Ask},
	}
	for _, c := range cases {
		got, _ := s.Evaluate(CommandContext{Argv: c.argv})
		if got != c.want {
			t.Errorf("Evaluate(%v) = %v, want %v", c.argv, got, c.want)
		}
	}
}

func TestDenyAlwaysSpecDottedPrefix(t *testing.T) {
	s := NewDenyAlwaysSpec(DefaultDenyAlwaysNames)
	got, _ := s.Evaluate(CommandContext{Argv: []string{"mkfs.ext4", "/dev/sdb"}})
	if got != decision.Deny {
		t.Errorf("Evaluate(mkfs.ext4) = %v, want Deny", got)
	}
}

func TestGitSpecReadOnlyAndMutating(t *testing.T) {
	s := NewGitSpec(DefaultGitReadOnly, DefaultGitMutating, nil, "")

	got, _ := s.Evaluate(CommandContext{Argv: []string{"git", "status"}})
	if got != decision.Allow {
		t.Errorf("git status = %v, want Allow", got)
	}
	got, _ = s.Evaluate(CommandContext{Argv: []string{"git", "push"}})
	if got != decision.Ask {
		t.Errorf("git push = %v, want Ask", got)
	}
}

func TestGitSpecSkipsGlobalFlags(t *testing.T) {
	s := NewGitSpec(DefaultGitReadOnly, DefaultGitMutating, nil, "")
	got, rm := s.Evaluate(CommandContext{Argv: []string{"git", "-C", "/repo", "--no-pager", "status"}})
	if got != decision.Allow {
		t.Errorf("got %v, want Allow; rule=%+v", got, rm)
	}
}

func TestGitSpecEnvGatedAllow(t *testing.T) {
	s := NewGitSpec(DefaultGitReadOnly, DefaultGitMutating, []string{"push"}, "GIT_CONFIG_GLOBAL")
	got, _ := s.Evaluate(CommandContext{
		Argv:           []string{"git", "push"},
		EnvAssignments: []string{"GIT_CONFIG_GLOBAL=/home/.ai"},
	})
	if got != decision.Allow {
		t.Errorf("env-gated git push = %v, want Allow", got)
	}

	got, _ = s.Evaluate(CommandContext{Argv: []string{"git", "push"}})
	if got != decision.Ask {
		t.Errorf("non-gated git push = %v, want Ask", got)
	}
}

func TestCargoSpecRunDefaultsToAsk(t *testing.T) {
	s := NewCargoSpec(DefaultCargoSafe, DefaultCargoMutating)
	got, _ := s.Evaluate(CommandContext{Argv: []string{"cargo", "run"}})
	if got != decision.Ask {
		t.Errorf("cargo run = %v, want Ask", got)
	}
	got, _ = s.Evaluate(CommandContext{Argv: []string{"cargo", "test"}})
	if got != decision.Allow {
		t.Errorf("cargo test = %v, want Allow", got)
	}
}

func TestKubectlSpecDryRunDoesNotDowngrade(t *testing.T) {
	s := NewKubectlSpec(DefaultKubectlReadOnly, DefaultKubectlMutating)
	got, _ := s.Evaluate(CommandContext{Argv: []string{"kubectl", "apply", "-f", "-", "--dry-run=client"}})
	if got != decision.Ask {
		t.Errorf("kubectl apply --dry-run=client = %v, want Ask", got)
	}
}

func TestKubectlSpecTwoWordVerb(t *testing.T) {
	s := NewKubectlSpec(DefaultKubectlReadOnly, DefaultKubectlMutating)
	got, _ := s.Evaluate(CommandContext{Argv: []string{"kubectl", "config", "current-context"}})
	if got != decision.Allow {
		t.Errorf("kubectl config current-context = %v, want Allow", got)
	}
}

// TestSimpleSpecPathDenyBeatsSymlinkAlias covers the path lookup's
// hardest invariant: a deny on a resolved/canonical path cannot be
// bypassed by a symlink alias to that same binary.
func TestSimpleSpecPathDenyBeatsSymlinkAlias(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "shred-real")
	if err := os.WriteFile(real, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	alias := filepath.Join(dir, "shred-alias")
	if err := os.Symlink(real, alias); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	s := NewSimpleSpec(nil, nil, []string{real})

	got, rm := s.Evaluate(CommandContext{Argv: []string{real}})
	if got != decision.Deny {
		t.Errorf("direct path Evaluate(%v) = %v, want Deny; rule=%+v", real, got, rm)
	}

	got, rm = s.Evaluate(CommandContext{Argv: []string{alias}})
	if got != decision.Deny {
		t.Errorf("symlink alias Evaluate(%v) = %v, want Deny (bypass via alias); rule=%+v", alias, got, rm)
	}
}

func TestGhSpecReadAndMutating(t *testing.T) {
	s := NewGhSpec(DefaultGhReadOnly, DefaultGhMutating, nil, "")
	got, _ := s.Evaluate(CommandContext{Argv: []string{"gh", "pr", "view"}})
	if got != decision.Allow {
		t.Errorf("gh pr view = %v, want Allow", got)
	}
	got, _ = s.Evaluate(CommandContext{Argv: []string{"gh", "pr", "create"}})
	if got != decision.Ask {
		t.Errorf("gh pr create = %v, want Ask", got)
	}
}
