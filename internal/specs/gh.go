package specs

import "github.com/anthropics/cc-toolgate/internal/decision"

// GhSpec classifies GitHub CLI invocations by "resource subverb",
// analogous to GitSpec but keyed on a two-token verb
// since gh's subcommands are organized by resource (pr, issue, repo, ...).
type GhSpec struct {
	ReadOnly          map[string]bool
	Mutating          map[string]bool
	AllowedWithConfig map[string]bool
	ConfigEnvVar      string
}

func NewGhSpec(readOnly, mutating, allowedWithConfig []string, configEnvVar string) *GhSpec {
	return &GhSpec{
		ReadOnly:          toSet(readOnly),
		Mutating:          toSet(mutating),
		AllowedWithConfig: toSet(allowedWithConfig),
		ConfigEnvVar:      configEnvVar,
	}
}

func (s *GhSpec) Evaluate(ctx CommandContext) (decision.Decision, RuleMatch) {
	if len(ctx.Argv) < 3 {
		return decision.Ask, RuleMatch{Matched: "gh", Kind: "verb-unknown", Reason: "no resource subverb present"}
	}
	verb := ctx.Argv[1] + " " + ctx.Argv[2]

	if s.AllowedWithConfig[verb] && s.ConfigEnvVar != "" {
		if _, present := ctx.Env(s.ConfigEnvVar); present {
			return decision.Allow, RuleMatch{Matched: "gh " + verb, Kind: "verb-env-gated-allow", Reason: "allowed with required config present"}
		}
	}

	if s.ReadOnly[verb] {
		return decision.Allow, RuleMatch{Matched: "gh " + verb, Kind: "verb-read-only", Reason: "read-only verb"}
	}
	if s.Mutating[verb] {
		return decision.Ask, RuleMatch{Matched: "gh " + verb, Kind: "verb-mutating", Reason: "mutating verb"}
	}
	return decision.Ask, RuleMatch{Matched: "gh " + verb, Kind: "verb-unknown", Reason: "unrecognized verb"}
}

var (
	DefaultGhReadOnly = []string{
		"auth status", "repo view",
		"pr view", "pr list", "pr diff",
		"issue view", "issue list",
		"run view", "run list",
		"workflow view", "workflow list",
	}
	DefaultGhMutating = []string{
		"pr create", "pr merge", "pr close",
		"issue create", "issue close",
		"repo create", "repo delete", "repo archive",
		"release create",
	}
)
