// Package decisionlog is the append-only audit trail of every decision the
// gate makes, one JSON line per invocation. Grounded on the teacher's
// internal/logger/logger.go (mutex-guarded single-file append, AuditEvent
// shape) but rebuilt on github.com/rs/zerolog for structured fields instead
// of hand-rolled json.Marshal, per SPEC_FULL.md §4.2. The teacher's log
// rotation is dropped: spec.md commits to a flat audit trail with no
// rotation requirement, so this keeps the simpler append invariant.
package decisionlog

import (
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anthropics/cc-toolgate/internal/decision"
	"github.com/anthropics/cc-toolgate/internal/redact"
)

// Entry is one decision log line: the raw command, the verdict, and the
// rule that produced it. Args and EnvAssignments are the tokenizer's
// split of Command, logged separately so env_assignments can be redacted
// by name (RedactEnvVars) rather than by pattern alone.
type Entry struct {
	Command        string
	Args           []string
	EnvAssignments []string
	Decision       decision.Decision
	RuleKind       string
	RuleMatched    string
	Reason         string
	EscalatedDeny  bool
}

// Logger appends Entry records to a file as structured JSON lines,
// stamping each with a correlation id so a host batching several tool
// calls can tie gate output back to its own trace.
type Logger struct {
	mu sync.Mutex
	zl zerolog.Logger
	f  *os.File
}

// Open appends to (creating if absent) the decision log at path.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &Logger{f: f, zl: zerolog.New(f).With().Timestamp().Logger()}, nil
}

// Log writes one redacted, structured, timestamped line for e.
func (l *Logger) Log(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zl.Log().
		Str("id", uuid.NewString()).
		Str("command", redact.Redact(e.Command)).
		Strs("args", redact.RedactArgs(e.Args)).
		Strs("env_assignments", redact.RedactEnvVars(e.EnvAssignments)).
		Str("decision", e.Decision.String()).
		Str("rule_kind", e.RuleKind).
		Str("rule_matched", redact.Redact(e.RuleMatched)).
		Str("reason", e.Reason).
		Bool("escalated_deny", e.EscalatedDeny).
		Send()
	return nil
}

// Close releases the underlying file handle.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
