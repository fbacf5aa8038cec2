package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pack is a drop-in YAML overlay file supplementing a Document's
// subcommand sections, mirroring the teacher's internal/policy/pack.go
// Pack shape but narrowed to the git/cargo/kubectl/gh lists this spec's
// config actually carries.
type Pack struct {
	Name    string            `yaml:"name"`
	Git     SubcommandSection `yaml:"git"`
	Cargo   SubcommandSection `yaml:"cargo"`
	Kubectl SubcommandSection `yaml:"kubectl"`
	Gh      SubcommandSection `yaml:"gh"`
}

// LoadPacks reads every .yaml/.yml file in packsDir (skipping ones whose
// basename starts with "_", disabled the same way the teacher's pack
// loader treats an underscore prefix) and unions each pack's subcommand
// lists into base, in directory order. A missing packsDir is not an
// error — packs are optional.
func LoadPacks(packsDir string, base *Document) (*Document, error) {
	entries, err := os.ReadDir(packsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, err
	}

	result := base
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		baseName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if strings.HasPrefix(baseName, "_") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(packsDir, entry.Name()))
		if err != nil {
			continue
		}
		var pack Pack
		if err := yaml.Unmarshal(data, &pack); err != nil {
			continue
		}

		result = &Document{
			Commands: result.Commands,
			Wrappers: result.Wrappers,
			Git:      mergeSubcommand(result.Git, pack.Git),
			Cargo:    mergeSubcommand(result.Cargo, pack.Cargo),
			Kubectl:  mergeSubcommand(result.Kubectl, pack.Kubectl),
			Gh:       mergeSubcommand(result.Gh, pack.Gh),
		}
	}

	return result, nil
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
