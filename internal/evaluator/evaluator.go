// Package evaluator implements the top-level orchestrator (the Evaluator
// of SPEC_FULL.md §3): it walks a parsed pipeline, resolves wrappers, recurses into
// command substitutions, and aggregates per-segment decisions under the
// worst-wins rule into one final Decision and RuleMatch. Grounded on the
// teacher's internal/analyzer/registry.go (RunAll, running every analyzer
// over a parsed command) and internal/analyzer/combiner.go
// (combineMostRestrictive's most-severe-wins aggregation, generalized
// here from a finding list to a recursive segment/substitution/wrapper
// walk) plus internal/policy/engine.go's top-level Evaluate entrypoint.
package evaluator

import (
	"strings"

	"github.com/anthropics/cc-toolgate/internal/decision"
	"github.com/anthropics/cc-toolgate/internal/registry"
	"github.com/anthropics/cc-toolgate/internal/shellwalk"
	"github.com/anthropics/cc-toolgate/internal/specs"
	"github.com/anthropics/cc-toolgate/internal/tokenizer"
)

// recursionLimit bounds substitution and wrapper recursion combined:
// exceeding it returns Ask with reason "recursion limit" rather than
// looping or crashing.
const recursionLimit = 16

// Result is the final verdict plus its justification.
type Result struct {
	Decision decision.Decision
	Rule     specs.RuleMatch
}

// Evaluator orchestrates tokenizing, walking, and per-spec dispatch
// against one frozen Registry.
type Evaluator struct {
	registry *registry.Registry
}

// New builds an Evaluator bound to a frozen registry.
func New(reg *registry.Registry) *Evaluator {
	return &Evaluator{registry: reg}
}

// Evaluate is the public entrypoint: evaluate a raw shell command string
// from depth 0.
func (e *Evaluator) Evaluate(rawCommand string) Result {
	return e.evalString(rawCommand, 0)
}

func (e *Evaluator) evalString(raw string, depth int) Result {
	if depth > recursionLimit {
		return Result{Decision: decision.Ask, Rule: specs.RuleMatch{Kind: "recursion-limit", Reason: "recursion limit"}}
	}

	best := Result{Decision: decision.Allow}
	matched := false
	maximize := func(r Result) {
		if !matched || r.Decision > best.Decision {
			best = r
			matched = true
		}
	}

	for _, threat := range shellwalk.SmugglingScan(raw) {
		maximize(Result{
			Decision: threat.Severity,
			Rule: specs.RuleMatch{
				Matched: threat.Codepoint,
				Kind:    "unicode-" + threat.Category,
				Reason:  threat.Description,
			},
		})
	}

	pp, err := shellwalk.Parse(raw)
	if err != nil {
		maximize(Result{Decision: decision.Ask, Rule: specs.RuleMatch{Kind: "parse-error", Reason: "unparseable"}})
		return best
	}

	for _, seg := range pp.Segments {
		maximize(e.evaluateSegment(seg, depth))
	}

	if !matched {
		return Result{Decision: decision.Ask, Rule: specs.RuleMatch{Kind: "fallthrough-ask", Reason: "empty command"}}
	}
	return best
}

func (e *Evaluator) evaluateSegment(seg shellwalk.ShellSegment, depth int) Result {
	argv, err := tokenizer.Tokenize(seg.Command)
	if err != nil {
		return Result{Decision: decision.Ask, Rule: specs.RuleMatch{Kind: "parse-error", Reason: "unparseable"}}
	}
	if len(argv) == 0 {
		return Result{Decision: decision.Ask, Rule: specs.RuleMatch{Kind: "fallthrough-ask", Reason: "empty segment"}}
	}

	base := tokenizer.BaseCommand(argv)
	env := tokenizer.EnvVars(argv)
	cmdArgv := tokenizer.CommandArgv(argv)

	var result Result
	if w, ok := e.registry.Wrapper(base); ok {
		result = e.evaluateWrapper(w, base, cmdArgv, depth)
	} else {
		spec := e.registry.Resolve(base)
		d, rm := spec.Evaluate(specs.CommandContext{Argv: cmdArgv, EnvAssignments: env})
		result = Result{Decision: d, Rule: rm}
	}

	if seg.Redirection != nil && !seg.Redirection.Benign() && result.Decision == decision.Allow {
		result = Result{
			Decision: decision.Ask,
			Rule:     specs.RuleMatch{Matched: seg.Redirection.Dest, Kind: "redirection-escalation", Reason: "redirection escalates"},
		}
	}

	for _, sub := range seg.Substitutions {
		subResult := e.evalString(sub, depth+1)
		if subResult.Decision > result.Decision {
			result = subResult
		}
	}

	return result
}

// evaluateWrapper unwinds one wrapper command: skip the wrapper's own
// flags, extract the inner payload, and recurse through the full
// evaluator, returning max(floor, inner).
func (e *Evaluator) evaluateWrapper(w registry.WrapperSpec, base string, argv []string, depth int) Result {
	if depth >= recursionLimit {
		return Result{Decision: decision.Ask, Rule: specs.RuleMatch{Kind: "recursion-limit", Reason: "recursion limit"}}
	}

	inner := innerPayload(argv, w)
	if len(inner) == 0 {
		return Result{Decision: w.Floor, Rule: specs.RuleMatch{Matched: base, Kind: "wrapper-floor", Reason: "wrapper with no payload"}}
	}

	innerCommand := strings.Join(inner, " ")
	innerResult := e.evalString(innerCommand, depth+1)

	if innerResult.Decision > w.Floor {
		return Result{Decision: innerResult.Decision, Rule: innerResult.Rule}
	}
	return Result{Decision: w.Floor, Rule: specs.RuleMatch{Matched: base, Kind: "wrapper-floor", Reason: "wrapper floor applies"}}
}

// innerPayload skips a wrapper's own flags (and, for wrappers like env,
// leading KEY=value assignments) and returns the remaining argv as the
// inner command to recurse into.
func innerPayload(argv []string, w registry.WrapperSpec) []string {
	i := 1
	for i < len(argv) {
		tok := argv[i]
		if w.SkipLeadingAssignments && isAssignmentToken(tok) {
			i++
			continue
		}
		if len(tok) > 0 && tok[0] == '-' {
			if w.FlagsWithArg[tok] {
				i += 2
			} else {
				i++
			}
			continue
		}
		break
	}
	if i > len(argv) {
		i = len(argv)
	}
	return argv[i:]
}

func isAssignmentToken(tok string) bool {
	eq := strings.IndexByte(tok, '=')
	if eq <= 0 {
		return false
	}
	name := tok[:eq]
	for i, c := range name {
		if c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}
