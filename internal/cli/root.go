package cli

import (
	"github.com/spf13/cobra"
)

var (
	policyPath   string
	logPath      string
	escalateDeny bool
)

var rootCmd = &cobra.Command{
	Use:   "cc-toolgate",
	Short: "Pre-execution authorization gate for shell commands",
	Long: `cc-toolgate reads one JSON envelope from stdin carrying a shell command,
classifies every executable segment in it against a configurable policy, and
writes one JSON envelope to stdout carrying allow, ask, or deny plus a reason.`,
	RunE: runGate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&policyPath, "policy", "", "Path to policy TOML file (default: ~/.cc-toolgate/policy.toml)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to decision log file (default: ~/.cc-toolgate/decisions.jsonl)")
	rootCmd.PersistentFlags().BoolVar(&escalateDeny, "escalate-deny", false, "Rewrite deny decisions to ask at the output boundary")
}

func Execute() error {
	return rootCmd.Execute()
}
