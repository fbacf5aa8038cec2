package specs

import "github.com/anthropics/cc-toolgate/internal/decision"

// gitGlobalFlagsWithArg are git's own global flags that consume the
// following token as a separate argument (e.g. "-C path", "-c k=v") and
// must be skipped before argv[1] can be read as the subcommand. Any
// other flag token (--git-dir=x, --no-pager, -P,
// ...) is skipped as a single token by isFlagToken below.
var gitGlobalFlagsWithArg = map[string]bool{"-C": true, "-c": true}

// GitSpec classifies git invocations by subcommand.
// Grounded on the teacher's command-intent classification pattern
// (internal/analyzer/semantic.go) generalized into a dedicated subcommand
// spec, since git's read/write split is stable and tool-specific enough to
// warrant its own variant rather than a semantic rule.
type GitSpec struct {
	ReadOnly          map[string]bool
	Mutating          map[string]bool
	AllowedWithConfig map[string]bool
	ConfigEnvVar      string
}

// NewGitSpec builds a GitSpec from configured subcommand lists.
func NewGitSpec(readOnly, mutating, allowedWithConfig []string, configEnvVar string) *GitSpec {
	return &GitSpec{
		ReadOnly:          toSet(readOnly),
		Mutating:          toSet(mutating),
		AllowedWithConfig: toSet(allowedWithConfig),
		ConfigEnvVar:      configEnvVar,
	}
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, i := range items {
		m[i] = true
	}
	return m
}

// subcommandAfterGlobalFlags skips git's own global flags (see
// gitGlobalFlagsWithArg) and returns the subcommand token, or ""
// if none remains.
func subcommandAfterGlobalFlags(argv []string) string {
	i := 1
	for i < len(argv) {
		tok := argv[i]
		if !isFlagToken(tok) {
			return tok
		}
		if gitGlobalFlagsWithArg[tok] {
			i += 2
			continue
		}
		i++
	}
	return ""
}

func isFlagToken(tok string) bool {
	return len(tok) > 0 && tok[0] == '-'
}

func (s *GitSpec) Evaluate(ctx CommandContext) (decision.Decision, RuleMatch) {
	sub := subcommandAfterGlobalFlags(ctx.Argv)
	if sub == "" {
		return decision.Ask, RuleMatch{Matched: "git", Kind: "subcommand-unknown", Reason: "no subcommand present"}
	}

	if s.AllowedWithConfig[sub] && s.ConfigEnvVar != "" {
		if _, present := ctx.Env(s.ConfigEnvVar); present {
			return decision.Allow, RuleMatch{Matched: "git " + sub, Kind: "subcommand-env-gated-allow", Reason: "allowed with required config present"}
		}
	}

	if s.ReadOnly[sub] {
		return decision.Allow, RuleMatch{Matched: "git " + sub, Kind: "subcommand-read-only", Reason: "read-only subcommand"}
	}
	if s.Mutating[sub] {
		return decision.Ask, RuleMatch{Matched: "git " + sub, Kind: "subcommand-mutating", Reason: "mutating subcommand"}
	}
	return decision.Ask, RuleMatch{Matched: "git " + sub, Kind: "subcommand-unknown", Reason: "unrecognized subcommand"}
}

// DefaultGitReadOnly and DefaultGitMutating seed the default policy,
// adapted from common git-subcommand risk classification.
var (
	DefaultGitReadOnly = []string{
		"status", "diff", "log", "show", "remote", "fetch",
		"blame", "describe", "shortlog", "reflog", "ls-files", "ls-remote",
		"rev-parse", "cat-file", "config",
	}
	DefaultGitMutating = []string{
		"push", "commit", "merge", "rebase", "reset", "checkout", "clean",
		"cherry-pick", "revert", "stash", "pull", "add", "rm", "mv", "tag",
		"branch", "apply", "am", "submodule", "worktree", "gc", "filter-branch",
	}
)
