package specs

import "github.com/anthropics/cc-toolgate/internal/decision"

// CargoSpec classifies cargo invocations by subcommand:
// "cargo run" defaults to ask since it executes arbitrary project
// code; the build/check/lint/doc family defaults to allow.
type CargoSpec struct {
	SafeSubcommands map[string]bool
	Mutating        map[string]bool
}

func NewCargoSpec(safe, mutating []string) *CargoSpec {
	return &CargoSpec{SafeSubcommands: toSet(safe), Mutating: toSet(mutating)}
}

func (s *CargoSpec) Evaluate(ctx CommandContext) (decision.Decision, RuleMatch) {
	if len(ctx.Argv) < 2 {
		return decision.Ask, RuleMatch{Matched: "cargo", Kind: "subcommand-unknown", Reason: "no subcommand present"}
	}
	sub := ctx.Argv[1]
	if s.SafeSubcommands[sub] {
		return decision.Allow, RuleMatch{Matched: "cargo " + sub, Kind: "subcommand-safe", Reason: "safe subcommand"}
	}
	if s.Mutating[sub] {
		return decision.Ask, RuleMatch{Matched: "cargo " + sub, Kind: "subcommand-mutating", Reason: "mutating subcommand"}
	}
	return decision.Ask, RuleMatch{Matched: "cargo " + sub, Kind: "subcommand-unknown", Reason: "unrecognized subcommand"}
}

var (
	DefaultCargoSafe = []string{
		"test", "build", "check", "clippy", "fmt", "doc", "tree", "metadata", "search",
	}
	DefaultCargoMutating = []string{"run", "install", "publish", "add", "remove", "update", "yank"}
)
