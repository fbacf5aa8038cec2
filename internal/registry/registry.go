// Package registry assembles the frozen command lookup table described in
// SPEC_FULL.md §3: a basename-to-CommandSpec mapping and a wrapper
// table, built once at startup and never mutated afterward. Build merges
// nothing itself: it copies tables that internal/config has already
// merged (config's merge follows the teacher's policy.LoadPacks/
// mergePackInto semantics in internal/policy/pack.go).
package registry

import (
	"github.com/anthropics/cc-toolgate/internal/decision"
	"github.com/anthropics/cc-toolgate/internal/specs"
)

// WrapperSpec describes one entry in the wrapper table (SPEC_FULL.md
// §3): the floor decision a wrapper imposes regardless of payload, and
// how to skip past the wrapper's own flags to find the inner command.
type WrapperSpec struct {
	Floor Decision
	// FlagsWithArg are wrapper flags that consume the following token
	// as a separate argument (e.g. sudo's "-u USER", xargs's "-n N").
	FlagsWithArg map[string]bool
	// SkipLeadingAssignments is set for wrappers like "env" whose inner
	// payload may be preceded by KEY=value words that are themselves
	// part of the wrapper's own syntax, not the inner command.
	SkipLeadingAssignments bool
}

// Decision aliases decision.Decision so callers configuring a registry
// don't need a second import for this package's public API.
type Decision = decision.Decision

// Registry is immutable after Build returns: nothing in this package
// mutates its tables afterward.
type Registry struct {
	global          *specs.SimpleSpec
	subcommandSpecs map[string]specs.CommandSpec
	denyAlways      *specs.DenyAlwaysSpec
	wrappers        map[string]WrapperSpec
}

// BuildParams carries every configured table the registry is built from.
// A config loader translates its merged TOML/YAML document into this
// shape and calls Build once at startup.
type BuildParams struct {
	Global     *specs.SimpleSpec
	DenyAlways *specs.DenyAlwaysSpec
	// Subcommands maps a basename ("git", "cargo", "kubectl", "gh") to
	// its dedicated spec. DenyAlways entries are wired automatically and
	// need not appear here.
	Subcommands map[string]specs.CommandSpec
	Wrappers    map[string]WrapperSpec
}

// Build freezes a Registry from the given tables. Fall-through for an
// unrecognized basename is always Ask: it flows from the global
// SimpleSpec's own fallthrough-ask branch, per SPEC_FULL.md §3's Registry
// definition.
func Build(p BuildParams) *Registry {
	r := &Registry{
		global:          p.Global,
		subcommandSpecs: map[string]specs.CommandSpec{},
		denyAlways:      p.DenyAlways,
		wrappers:        map[string]WrapperSpec{},
	}
	for k, v := range p.Subcommands {
		r.subcommandSpecs[k] = v
	}
	for k, v := range p.Wrappers {
		r.wrappers[k] = v
	}
	if r.global == nil {
		r.global = specs.NewSimpleSpec(nil, nil, nil)
	}
	return r
}

// Resolve returns the CommandSpec a basename dispatches to: an exact subcommand spec first, then the
// deny-always set (including its dotted-prefix/glob fallback), then the
// global SimpleSpec as the catch-all.
func (r *Registry) Resolve(basename string) specs.CommandSpec {
	if spec, ok := r.subcommandSpecs[basename]; ok {
		return spec
	}
	if r.denyAlways != nil && r.denyAlways.Matches(basename) {
		return r.denyAlways
	}
	return r.global
}

// Wrapper reports whether basename is a registered wrapper command and,
// if so, its floor and flag-skipping configuration.
func (r *Registry) Wrapper(basename string) (WrapperSpec, bool) {
	w, ok := r.wrappers[basename]
	return w, ok
}
