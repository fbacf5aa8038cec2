package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anthropics/cc-toolgate/internal/config"
	"github.com/anthropics/cc-toolgate/internal/decision"
	"github.com/anthropics/cc-toolgate/internal/decisionlog"
	"github.com/anthropics/cc-toolgate/internal/evaluator"
	"github.com/anthropics/cc-toolgate/internal/tokenizer"
	"github.com/anthropics/cc-toolgate/internal/transport"
)

// runGate is the root command's entrypoint: the actual gate, invoked with
// no subcommand. It reads one envelope from stdin and writes one to
// stdout, per spec.md §6. A malformed input envelope or a failed write of
// the output envelope exits with code 2; every decision, including deny,
// is reported via exit 0 with the verdict carried in the JSON body.
func runGate(cmd *cobra.Command, args []string) error {
	req, err := transport.ReadRequest(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc-toolgate: %v\n", err)
		os.Exit(2)
	}

	if !req.IsBash() {
		if err := transport.WriteResponse(os.Stdout, transport.EmptyResponse()); err != nil {
			fmt.Fprintf(os.Stderr, "cc-toolgate: %v\n", err)
			os.Exit(2)
		}
		return nil
	}

	resolvedPolicy := policyPath
	if resolvedPolicy == "" {
		resolvedPolicy, _ = config.DefaultPolicyPath()
	}
	doc, cfgErr := config.LoadMerged(resolvedPolicy)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "cc-toolgate: warning: %v, using defaults\n", cfgErr)
	}
	doc, packErr := config.LoadPacks(filepath.Join(filepath.Dir(resolvedPolicy), "packs"), doc)
	if packErr != nil {
		fmt.Fprintf(os.Stderr, "cc-toolgate: warning: packs load failed: %v\n", packErr)
	}
	reg := config.BuildRegistry(doc)

	result := evaluator.New(reg).Evaluate(req.ToolInput.Command)
	verdict := result.Decision
	escalated := escalateDeny && verdict == decision.Deny
	if escalated {
		verdict = decision.EscalateDeny(verdict)
	}

	logDecision(req.ToolInput.Command, result, verdict, escalated)

	if err := transport.WriteResponse(os.Stdout, transport.Response{
		Permission: verdict.String(),
		Reason:     result.Rule.Reason,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "cc-toolgate: %v\n", err)
		os.Exit(2)
	}
	return nil
}

func logDecision(command string, result evaluator.Result, verdict decision.Decision, escalated bool) {
	resolvedLog := logPath
	if resolvedLog == "" {
		resolvedLog, _ = config.DefaultLogPath()
	}
	if resolvedLog == "" {
		return
	}

	l, err := decisionlog.Open(resolvedLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc-toolgate: warning: decision log open failed: %v\n", err)
		return
	}
	defer l.Close()

	// Tokenize is best-effort here: the evaluator has already run against
	// this same command, so a tokenize failure only means the log line
	// carries no separate args/env_assignments, never a gate decision
	// change.
	var args, envAssignments []string
	if argv, tokErr := tokenizer.Tokenize(command); tokErr == nil {
		envAssignments = tokenizer.EnvVars(argv)
		args = tokenizer.CommandArgv(argv)
	}

	if err := l.Log(decisionlog.Entry{
		Command:        command,
		Args:           args,
		EnvAssignments: envAssignments,
		Decision:       verdict,
		RuleKind:       result.Rule.Kind,
		RuleMatched:    result.Rule.Matched,
		Reason:         result.Rule.Reason,
		EscalatedDeny:  escalated,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "cc-toolgate: warning: decision log write failed: %v\n", err)
	}
}
