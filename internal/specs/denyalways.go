package specs

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/anthropics/cc-toolgate/internal/decision"
)

// DenyAlwaysSpec is the unconditional deny set for tools whose entire
// purpose is destructive regardless of arguments: shred, dd, the mkfs
// family, fdisk, parted, wipefs, mkswap — lifted from the teacher's
// disk-destruction semantic rules (internal/analyzer/semantic.go
// sem-block-shred-device and neighboring rules) but made unconditional
// here: the target path is never consulted.
type DenyAlwaysSpec struct {
	names  map[string]bool
	prefix map[string]bool
	globs  []string
}

// DefaultDenyAlwaysNames is the built-in deny-always set.
// "mkfs" also registers as a dotted prefix so "mkfs.ext4", "mkfs.xfs",
// etc. fall back to the prefix match.
var DefaultDenyAlwaysNames = []string{"shred", "dd", "mkfs", "fdisk", "parted", "wipefs", "mkswap"}

// NewDenyAlwaysSpec builds the spec from a configurable name set. Entries
// containing a glob meta-character are matched with doublestar.Match
// against the basename; plain entries get an implicit dotted-prefix
// fallback so a bare "mkfs" also denies "mkfs.ext4".
func NewDenyAlwaysSpec(names []string) *DenyAlwaysSpec {
	s := &DenyAlwaysSpec{names: map[string]bool{}, prefix: map[string]bool{}}
	for _, n := range names {
		if strings.ContainsAny(n, "*?[") {
			s.globs = append(s.globs, n)
			continue
		}
		s.names[n] = true
		s.prefix[n+"."] = true
	}
	return s
}

func (s *DenyAlwaysSpec) Evaluate(ctx CommandContext) (decision.Decision, RuleMatch) {
	if len(ctx.Argv) == 0 {
		return decision.Ask, RuleMatch{Kind: "fallthrough-ask", Reason: "empty command"}
	}
	b := basename(ctx.Argv[0])
	if rm, ok := s.match(b); ok {
		return decision.Deny, rm
	}
	return decision.Deny, RuleMatch{Matched: b, Kind: "deny-always", Reason: "command is always denied"}
}

// Matches reports whether basename b is covered by this spec's exact
// names, dotted-prefix fallback, or configured glob patterns — used by
// the registry to route a dotted command like "mkfs.ext4" to this spec
// even though "mkfs.ext4" itself was never registered as an exact name.
func (s *DenyAlwaysSpec) Matches(b string) bool {
	_, ok := s.match(b)
	return ok
}

func (s *DenyAlwaysSpec) match(b string) (RuleMatch, bool) {
	if s.names[b] {
		return RuleMatch{Matched: b, Kind: "deny-always", Reason: "command is always denied"}, true
	}
	for prefix := range s.prefix {
		if strings.HasPrefix(b, prefix) {
			return RuleMatch{Matched: b, Kind: "deny-always-prefix", Reason: "dotted-prefix command is always denied"}, true
		}
	}
	for _, pattern := range s.globs {
		if ok, _ := doublestar.Match(pattern, b); ok {
			return RuleMatch{Matched: b, Kind: "deny-always-glob", Reason: "command matches a denied glob pattern"}, true
		}
	}
	return RuleMatch{}, false
}
