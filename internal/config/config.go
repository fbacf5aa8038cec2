// Package config loads and merges the TOML policy document described in
// SPEC_FULL.md §4.1: an embedded default document overlaid by an optional
// user file, with list-union/remove_/replace merge semantics. Grounded on
// the teacher's internal/config/config.go (Load, directory/path
// resolution) and internal/policy/pack.go's mergePackInto (union-based
// merge, generalized here from YAML rule packs to TOML config sections).
// TOML decoding itself follows the format used by the dannycoates-cc-allow
// reference config (other_examples) since the teacher's own configuration
// is YAML-only.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/anthropics/cc-toolgate/internal/decision"
	"github.com/anthropics/cc-toolgate/internal/registry"
	"github.com/anthropics/cc-toolgate/internal/specs"
)

// DefaultConfigDir and DefaultPolicyFile mirror the teacher's well-known
// user data path convention, renamed to this tool's own namespace.
const (
	DefaultConfigDir  = ".cc-toolgate"
	DefaultPolicyFile = "policy.toml"
	DefaultLogFile    = "decisions.jsonl"
)

// ErrConfigInvalid marks a user config that failed to parse. Per
// SPEC_FULL.md §4.3's ConfigInvalid taxonomy entry, callers must log a
// warning and continue with the embedded defaults rather than fail.
var ErrConfigInvalid = errors.New("config invalid")

// CommandsSection is the [commands] TOML section.
type CommandsSection struct {
	Allow []string `toml:"allow"`
	Ask   []string `toml:"ask"`
	Deny  []string `toml:"deny"`

	RemoveAllow []string `toml:"remove_allow"`
	RemoveAsk   []string `toml:"remove_ask"`
	RemoveDeny  []string `toml:"remove_deny"`

	Replace bool `toml:"replace"`
}

// WrappersSection is the [wrappers] TOML section.
type WrappersSection struct {
	AllowFloor []string `toml:"allow_floor"`
	AskFloor   []string `toml:"ask_floor"`

	RemoveAllowFloor []string `toml:"remove_allow_floor"`
	RemoveAskFloor   []string `toml:"remove_ask_floor"`

	Replace bool `toml:"replace"`
}

// SubcommandSection is the shape shared by [git], [cargo], [kubectl], [gh].
type SubcommandSection struct {
	ReadOnly          []string `toml:"read_only"`
	Mutating          []string `toml:"mutating"`
	AllowedWithConfig []string `toml:"allowed_with_config"`
	ConfigEnvVar      string   `toml:"config_env_var"`

	RemoveReadOnly          []string `toml:"remove_read_only"`
	RemoveMutating          []string `toml:"remove_mutating"`
	RemoveAllowedWithConfig []string `toml:"remove_allowed_with_config"`

	Replace bool `toml:"replace"`
}

// Document is the full merged configuration shape, matching the sections
// enumerated in SPEC_FULL.md §4.1.
type Document struct {
	Commands CommandsSection   `toml:"commands"`
	Wrappers WrappersSection   `toml:"wrappers"`
	Git      SubcommandSection `toml:"git"`
	Cargo    SubcommandSection `toml:"cargo"`
	Kubectl  SubcommandSection `toml:"kubectl"`
	Gh       SubcommandSection `toml:"gh"`
}

// Default returns the embedded default policy document, seeded from the
// same built-in lists the specs package exposes.
func Default() *Document {
	return &Document{
		Commands: CommandsSection{
			Allow: []string{
				"ls", "cat", "echo", "pwd", "grep", "find", "head", "tail",
				"wc", "sort", "uniq", "diff", "which", "whoami", "date",
				"go", "make", "npm", "node", "python3", "pytest",
			},
			Ask:  []string{"rm", "mv", "chmod", "chown", "kill", "systemctl", "docker"},
			Deny: []string{},
		},
		Wrappers: WrappersSection{
			AllowFloor: []string{"xargs", "env"},
			AskFloor:   []string{"sudo"},
		},
		Git:     SubcommandSection{ReadOnly: specs.DefaultGitReadOnly, Mutating: specs.DefaultGitMutating},
		Cargo:   SubcommandSection{ReadOnly: specs.DefaultCargoSafe, Mutating: specs.DefaultCargoMutating},
		Kubectl: SubcommandSection{ReadOnly: specs.DefaultKubectlReadOnly, Mutating: specs.DefaultKubectlMutating},
		Gh:      SubcommandSection{ReadOnly: specs.DefaultGhReadOnly, Mutating: specs.DefaultGhMutating},
	}
}

// DefaultPolicyPath resolves the well-known user policy path, mirroring
// the teacher's config.Load directory convention.
func DefaultPolicyPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, DefaultConfigDir, DefaultPolicyFile), nil
}

// DefaultLogPath resolves the well-known decision log path.
func DefaultLogPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, DefaultConfigDir, DefaultLogFile), nil
}

// LoadMerged builds the effective document: the embedded default merged
// with the user overlay at path, if it exists and parses. A missing file
// is not an error. A file that exists but fails to parse returns the
// defaults unchanged plus a wrapped ErrConfigInvalid for the caller to
// log as a warning, per SPEC_FULL.md §4.3.
func LoadMerged(path string) (*Document, error) {
	base := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return base, nil
	}

	var overlay Document
	if _, err := toml.Decode(string(data), &overlay); err != nil {
		return base, errors.Join(ErrConfigInvalid, err)
	}

	return Merge(base, &overlay), nil
}

// Merge applies the merge rules of SPEC_FULL.md §4.1 to each section:
// list union preserving first-seen order, remove_<field> subtraction,
// scalar override, and replace=true wholesale replacement before any
// additive/removal rules.
func Merge(base, overlay *Document) *Document {
	return &Document{
		Commands: mergeCommands(base.Commands, overlay.Commands),
		Wrappers: mergeWrappers(base.Wrappers, overlay.Wrappers),
		Git:      mergeSubcommand(base.Git, overlay.Git),
		Cargo:    mergeSubcommand(base.Cargo, overlay.Cargo),
		Kubectl:  mergeSubcommand(base.Kubectl, overlay.Kubectl),
		Gh:       mergeSubcommand(base.Gh, overlay.Gh),
	}
}

func mergeCommands(base, overlay CommandsSection) CommandsSection {
	baseAllow, baseAsk, baseDeny := base.Allow, base.Ask, base.Deny
	if overlay.Replace {
		baseAllow, baseAsk, baseDeny = nil, nil, nil
	}
	return CommandsSection{
		Allow: mergeList(baseAllow, overlay.Allow, overlay.RemoveAllow),
		Ask:   mergeList(baseAsk, overlay.Ask, overlay.RemoveAsk),
		Deny:  mergeList(baseDeny, overlay.Deny, overlay.RemoveDeny),
	}
}

func mergeWrappers(base, overlay WrappersSection) WrappersSection {
	baseAllow, baseAsk := base.AllowFloor, base.AskFloor
	if overlay.Replace {
		baseAllow, baseAsk = nil, nil
	}
	return WrappersSection{
		AllowFloor: mergeList(baseAllow, overlay.AllowFloor, overlay.RemoveAllowFloor),
		AskFloor:   mergeList(baseAsk, overlay.AskFloor, overlay.RemoveAskFloor),
	}
}

func mergeSubcommand(base, overlay SubcommandSection) SubcommandSection {
	baseReadOnly, baseMutating, baseAllowedWith := base.ReadOnly, base.Mutating, base.AllowedWithConfig
	if overlay.Replace {
		baseReadOnly, baseMutating, baseAllowedWith = nil, nil, nil
	}
	envVar := base.ConfigEnvVar
	if overlay.ConfigEnvVar != "" {
		envVar = overlay.ConfigEnvVar
	}
	return SubcommandSection{
		ReadOnly:          mergeList(baseReadOnly, overlay.ReadOnly, overlay.RemoveReadOnly),
		Mutating:          mergeList(baseMutating, overlay.Mutating, overlay.RemoveMutating),
		AllowedWithConfig: mergeList(baseAllowedWith, overlay.AllowedWithConfig, overlay.RemoveAllowedWithConfig),
		ConfigEnvVar:      envVar,
	}
}

// mergeList unions base and additions preserving first-seen order, then
// subtracts removals.
func mergeList(base, additions, removals []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range base {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	for _, item := range additions {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	if len(removals) == 0 {
		return out
	}
	remove := map[string]bool{}
	for _, item := range removals {
		remove[item] = true
	}
	filtered := out[:0:0]
	for _, item := range out {
		if !remove[item] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BuildRegistry translates a merged Document into a frozen Registry,
// wiring its commands/wrappers/subcommand sections into the specs the
// registry dispatches to. The deny-always set (shred, dd, mkfs, ...) is a
// built-in invariant, not configurable from the document.
func BuildRegistry(doc *Document) *registry.Registry {
	global := specs.NewSimpleSpec(doc.Commands.Allow, doc.Commands.Ask, doc.Commands.Deny)
	denyAlways := specs.NewDenyAlwaysSpec(specs.DefaultDenyAlwaysNames)

	subcommands := map[string]specs.CommandSpec{
		"git":     specs.NewGitSpec(doc.Git.ReadOnly, doc.Git.Mutating, doc.Git.AllowedWithConfig, doc.Git.ConfigEnvVar),
		"cargo":   specs.NewCargoSpec(doc.Cargo.ReadOnly, doc.Cargo.Mutating),
		"kubectl": specs.NewKubectlSpec(doc.Kubectl.ReadOnly, doc.Kubectl.Mutating),
		"gh":      specs.NewGhSpec(doc.Gh.ReadOnly, doc.Gh.Mutating, doc.Gh.AllowedWithConfig, doc.Gh.ConfigEnvVar),
	}

	wrappers := registry.DefaultWrappers()
	for _, name := range doc.Wrappers.AskFloor {
		w := wrappers[name]
		w.Floor = decision.Ask
		wrappers[name] = w
	}
	for _, name := range doc.Wrappers.AllowFloor {
		w := wrappers[name]
		w.Floor = decision.Allow
		wrappers[name] = w
	}

	return registry.Build(registry.BuildParams{
		Global:      global,
		DenyAlways:  denyAlways,
		Subcommands: subcommands,
		Wrappers:    wrappers,
	})
}
