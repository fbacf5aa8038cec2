package specs

import "github.com/anthropics/cc-toolgate/internal/decision"

// KubectlSpec classifies kubectl invocations by verb.
// "--dry-run=client" is deliberately not consulted: the evaluator
// cannot prove the flag reaches the server, so mutating verbs stay Ask
// regardless of dry-run flags.
type KubectlSpec struct {
	ReadOnly map[string]bool
	Mutating map[string]bool
}

func NewKubectlSpec(readOnly, mutating []string) *KubectlSpec {
	return &KubectlSpec{ReadOnly: toSet(readOnly), Mutating: toSet(mutating)}
}

func (s *KubectlSpec) Evaluate(ctx CommandContext) (decision.Decision, RuleMatch) {
	if len(ctx.Argv) < 2 {
		return decision.Ask, RuleMatch{Matched: "kubectl", Kind: "verb-unknown", Reason: "no verb present"}
	}
	verb := ctx.Argv[1]

	// "config get-contexts" / "config current-context" are two-word verbs.
	if verb == "config" && len(ctx.Argv) >= 3 {
		verb = "config " + ctx.Argv[2]
	}

	if s.ReadOnly[verb] {
		return decision.Allow, RuleMatch{Matched: "kubectl " + verb, Kind: "verb-read-only", Reason: "read-only verb"}
	}
	if s.Mutating[verb] {
		return decision.Ask, RuleMatch{Matched: "kubectl " + verb, Kind: "verb-mutating", Reason: "mutating verb"}
	}
	return decision.Ask, RuleMatch{Matched: "kubectl " + verb, Kind: "verb-unknown", Reason: "unrecognized verb"}
}

var (
	DefaultKubectlReadOnly = []string{
		"get", "describe", "logs", "top", "explain", "api-resources",
		"api-versions", "version", "config get-contexts", "config current-context",
	}
	DefaultKubectlMutating = []string{
		"apply", "create", "delete", "patch", "replace", "scale", "rollout",
		"edit", "annotate", "label", "cordon", "drain", "taint",
	}
)
