package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/anthropics/cc-toolgate/internal/config"
)

var dumpConfigCmd = &cobra.Command{
	Use:       "dump-config [toml|json]",
	Short:     "Print the merged effective configuration",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"toml", "json"},
	RunE:      runDumpConfig,
}

func init() {
	rootCmd.AddCommand(dumpConfigCmd)
}

func runDumpConfig(cmd *cobra.Command, args []string) error {
	format := "toml"
	if len(args) == 1 {
		format = args[0]
	}

	resolvedPolicy := policyPath
	if resolvedPolicy == "" {
		resolvedPolicy, _ = config.DefaultPolicyPath()
	}
	doc, err := config.LoadMerged(resolvedPolicy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc-toolgate: warning: %v, dumping defaults\n", err)
	}
	doc, err = config.LoadPacks(filepath.Join(filepath.Dir(resolvedPolicy), "packs"), doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc-toolgate: warning: packs load failed: %v\n", err)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		if term.IsTerminal(int(os.Stdout.Fd())) {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(doc)
	default:
		enc := toml.NewEncoder(os.Stdout)
		return enc.Encode(doc)
	}
}
