package specs

import "github.com/anthropics/cc-toolgate/internal/decision"

// SimpleSpec backs the common case: a flat allow/ask/deny policy keyed at
// either path or basename specificity, looked up path first, then basename.
// Grounded on the teacher's policy.Policy path/basename split
// (internal/policy/types.go), generalized here into one reusable spec
// rather than a single global table.
type SimpleSpec struct {
	pathAllow, pathAsk, pathDeny             map[string]bool
	basenameAllow, basenameAsk, basenameDeny map[string]bool
}

// NewSimpleSpec partitions each of allow/ask/deny into its path table
// (entries containing a separator) and basename table (bare names).
func NewSimpleSpec(allow, ask, deny []string) *SimpleSpec {
	s := &SimpleSpec{
		pathAllow:     map[string]bool{},
		pathAsk:       map[string]bool{},
		pathDeny:      map[string]bool{},
		basenameAllow: map[string]bool{},
		basenameAsk:   map[string]bool{},
		basenameDeny:  map[string]bool{},
	}
	partition(allow, s.pathAllow, s.basenameAllow)
	partition(ask, s.pathAsk, s.basenameAsk)
	partition(deny, s.pathDeny, s.basenameDeny)
	return s
}

func partition(entries []string, pathSet, basenameSet map[string]bool) {
	for _, e := range entries {
		if containsSeparator(e) {
			pathSet[e] = true
		} else {
			basenameSet[e] = true
		}
	}
}

// Evaluate implements the path-then-basename lookup:
// deny at any specificity beats allow/ask at any less-specific level,
// and filesystem lookup failures simply skip that sub-step rather than
// upgrading the verdict.
func (s *SimpleSpec) Evaluate(ctx CommandContext) (decision.Decision, RuleMatch) {
	if len(ctx.Argv) == 0 {
		return decision.Ask, RuleMatch{Kind: "fallthrough-ask", Reason: "empty command"}
	}
	word := ctx.Argv[0]

	if p, ok := resolvePath(word); ok {
		if s.pathDeny[p] {
			return decision.Deny, RuleMatch{Matched: p, Kind: "resolved-path-deny", Reason: "path is denied"}
		}
		if r, ok := canonicalize(p); ok && r != p {
			if s.pathDeny[r] {
				return decision.Deny, RuleMatch{Matched: r, Kind: "resolved-path-deny", Reason: "canonical path is denied"}
			}
		}
		if s.pathAllow[p] {
			return decision.Allow, RuleMatch{Matched: p, Kind: "resolved-path-allow", Reason: "path is allowed"}
		}
		if s.pathAsk[p] {
			return decision.Ask, RuleMatch{Matched: p, Kind: "resolved-path-ask", Reason: "path requires confirmation"}
		}
		if r, ok := canonicalize(p); ok && r != p {
			if s.pathAllow[r] {
				return decision.Allow, RuleMatch{Matched: r, Kind: "resolved-path-allow", Reason: "canonical path is allowed"}
			}
			if s.pathAsk[r] {
				return decision.Ask, RuleMatch{Matched: r, Kind: "resolved-path-ask", Reason: "canonical path requires confirmation"}
			}
		}
	}

	b := basename(word)
	if s.basenameDeny[b] {
		return decision.Deny, RuleMatch{Matched: b, Kind: "basename-deny", Reason: "command is denied"}
	}
	if s.basenameAllow[b] {
		return decision.Allow, RuleMatch{Matched: b, Kind: "basename-allow", Reason: "command is allowed"}
	}
	if s.basenameAsk[b] {
		return decision.Ask, RuleMatch{Matched: b, Kind: "basename-ask", Reason: "command requires confirmation"}
	}

	return decision.Ask, RuleMatch{Matched: b, Kind: "fallthrough-ask", Reason: "no matching policy entry"}
}
