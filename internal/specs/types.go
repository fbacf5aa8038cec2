// Package specs implements the per-command evaluation capability described
// in SPEC_FULL.md §3: a tagged variant of CommandSpec implementations,
// mirroring the teacher's semantic-rule style (internal/analyzer/semantic.go)
// but keyed by command name rather than applied as a flat rule list.
package specs

import "github.com/anthropics/cc-toolgate/internal/decision"

// CommandContext is the input a CommandSpec is queried with: the segment's
// tokenized argv and any leading KEY=value assignments. It carries no
// registry or config snapshot; each spec holds the configured lists it
// was constructed with.
type CommandContext struct {
	Argv           []string
	EnvAssignments []string
}

// Env looks up the value of a leading KEY=value assignment, reporting
// whether it was present at all.
func (c CommandContext) Env(name string) (string, bool) {
	prefix := name + "="
	for _, kv := range c.EnvAssignments {
		if len(kv) > len(prefix) && kv[:len(prefix)] == prefix {
			return kv[len(prefix):], true
		}
		if kv == name+"=" {
			return "", true
		}
	}
	return "", false
}

// RuleMatch is the justification accompanying a Decision, per spec.md §3.
type RuleMatch struct {
	Matched string
	Kind    string
	Reason  string
}

// CommandSpec is the capability every per-tool evaluator implements.
type CommandSpec interface {
	Evaluate(ctx CommandContext) (decision.Decision, RuleMatch)
}
