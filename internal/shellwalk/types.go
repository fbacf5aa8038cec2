// Package shellwalk decomposes a raw shell command string into an ordered
// ParsedPipeline of segments, operators, redirections, and command
// substitutions, using mvdan.cc/sh/v3's Bash grammar — the same dependency
// the teacher (security-researcher-ca-AI-Agentic-Shield) uses for its
// structural analyzer.
package shellwalk

import "errors"

// ErrParse is returned when the grammar rejects the input. Callers must
// never treat this as Allow; the evaluator maps it to Ask.
var ErrParse = errors.New("unparseable shell command")

// Operator joins two adjacent ShellSegments.
type Operator string

const (
	Pipe    Operator = "|"
	PipeErr Operator = "|&"
	And     Operator = "&&"
	Or      Operator = "||"
	Semi    Operator = ";"
)

// Redirection describes one redirect attached to a segment.
type Redirection struct {
	// Op is the redirect operator text: ">", ">>", "<", "<<", "<<<", ">|", "N>&M".
	Op string
	// Dest is the destination token: a filename, "/dev/null", or "&N".
	Dest string
}

// Benign reports whether this redirection cannot mutate state: writing to
// /dev/null, or duplicating an existing standard descriptor (&0, &1, &2).
func (r Redirection) Benign() bool {
	if r.Dest == "/dev/null" {
		return true
	}
	switch r.Dest {
	case "&0", "&1", "&2":
		return true
	}
	return false
}

// ShellSegment is one command within a pipeline, after heredoc/redirection
// text has been stripped from Command.
type ShellSegment struct {
	// Command is the segment's executable-plus-arguments text.
	Command string
	// Redirection is the segment's redirect, if any.
	Redirection *Redirection
	// Substitutions are the unparsed command strings captured from
	// $(...), backticks, and process substitutions found anywhere in
	// this segment. Each is evaluated recursively.
	Substitutions []string
}

// ParsedPipeline is an ordered, non-empty sequence of segments interleaved
// with operators: len(Operators) == len(Segments) - 1.
type ParsedPipeline struct {
	Segments  []ShellSegment
	Operators []Operator
}

// maxSegments bounds the number of segments a single parse will emit,
// per spec.md §5's resource model.
const maxSegments = 256
