package shellwalk

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Parse consumes a raw command string and produces a ParsedPipeline. It
// never fabricates a best-effort parse on grammar failure: callers must
// treat ErrParse as a signal to return Ask, never Allow (spec.md §4.2, §7).
func Parse(command string) (*ParsedPipeline, error) {
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, ErrParse
	}

	pp := &ParsedPipeline{}
	w := &walker{pp: pp}
	w.walkStmtList(file.Stmts)
	return pp, nil
}

type walker struct {
	pp *ParsedPipeline
}

func (w *walker) atCap() bool {
	return len(w.pp.Segments) >= maxSegments
}

// walkStmtList appends a list of top-level (or subshell-body) statements,
// joined by Semi — bash treats successive statements the same way whether
// separated by ';' or a newline for gating purposes.
func (w *walker) walkStmtList(stmts []*syntax.Stmt) {
	for i, stmt := range stmts {
		if w.atCap() {
			return
		}
		if i > 0 {
			w.pp.Operators = append(w.pp.Operators, Semi)
		}
		w.walkStmt(stmt)
	}
}

func (w *walker) walkStmt(stmt *syntax.Stmt) {
	if w.atCap() || stmt == nil {
		return
	}

	switch cmd := stmt.Cmd.(type) {
	case nil:
		// A bare redirection with no command; nothing to evaluate.
		return

	case *syntax.CallExpr:
		w.appendSegment(callExprText(cmd), redirectionFor(stmt.Redirs), substitutionsIn(stmt))

	case *syntax.BinaryCmd:
		w.walkStmt(cmd.X)
		if w.atCap() {
			return
		}
		w.pp.Operators = append(w.pp.Operators, operatorFor(cmd.Op))
		w.walkStmt(cmd.Y)

	case *syntax.Subshell:
		w.walkStmtList(cmd.Stmts)

	default:
		// Compound statements (for/while/until/if/case), function
		// declarations, and brace groups are opaque: captured whole,
		// still scanned for substitutions. The keyword is always the
		// first token of the reconstructed text, so base_command()
		// resolves to "for"/"while"/"if"/"case" as spec.md §4.2 requires.
		w.appendSegment(printNode(stmt), redirectionFor(stmt.Redirs), substitutionsIn(stmt))
	}
}

func (w *walker) appendSegment(command string, redir *Redirection, subs []string) {
	if w.atCap() {
		return
	}
	w.pp.Segments = append(w.pp.Segments, ShellSegment{
		Command:       command,
		Redirection:   redir,
		Substitutions: subs,
	})
}

func operatorFor(op syntax.BinCmdOperator) Operator {
	switch op {
	case syntax.AndStmt:
		return And
	case syntax.OrStmt:
		return Or
	case syntax.Pipe:
		return Pipe
	case syntax.PipeAll:
		return PipeErr
	default:
		return Pipe
	}
}

// callExprText reconstructs the segment's executable-plus-arguments text
// from a CallExpr's assignments and args, mirroring the teacher's
// callExprToSegment word-join approach (structural.go).
func callExprText(call *syntax.CallExpr) string {
	var parts []string
	for _, as := range call.Assigns {
		val := ""
		if as.Value != nil {
			val = wordToString(as.Value)
		}
		parts = append(parts, as.Name.Value+"="+val)
	}
	for _, word := range call.Args {
		parts = append(parts, wordToString(word))
	}
	return strings.Join(parts, " ")
}

func wordToString(word *syntax.Word) string {
	if word == nil {
		return ""
	}
	var sb strings.Builder
	printer := syntax.NewPrinter()
	_ = printer.Print(&sb, word)
	return sb.String()
}

func printNode(node syntax.Node) string {
	var sb strings.Builder
	printer := syntax.NewPrinter()
	_ = printer.Print(&sb, node)
	return sb.String()
}

// redirectionFor classifies a statement's redirects into one Redirection,
// per spec.md §4.2: the worst (most mutating) one wins when several are
// present, since any mutating redirection on a segment is enough to escalate.
func redirectionFor(redirs []*syntax.Redirect) *Redirection {
	var firstBenign *Redirection
	for _, r := range redirs {
		classified := classifyRedirect(r)
		if classified == nil {
			continue
		}
		if !classified.Benign() {
			return classified
		}
		if firstBenign == nil {
			firstBenign = classified
		}
	}
	return firstBenign
}

func classifyRedirect(r *syntax.Redirect) *Redirection {
	if r == nil {
		return nil
	}
	op := r.Op.String()
	dest := redirectDest(r)
	return &Redirection{Op: op, Dest: dest}
}

func redirectDest(r *syntax.Redirect) string {
	switch r.Op {
	case syntax.DplOut, syntax.DplIn:
		return "&" + wordToString(r.Word)
	default:
		return wordToString(r.Word)
	}
}

// substitutionsIn walks every node reachable from root and records the
// inner source text of each command substitution ($(...), backticks) and
// process substitution (<(...), >(...)) found anywhere within it — including
// inside double-quoted strings, but never inside single-quoted strings
// (the grammar itself never produces these nodes inside single quotes).
func substitutionsIn(root syntax.Node) []string {
	var subs []string
	syntax.Walk(root, func(n syntax.Node) bool {
		switch v := n.(type) {
		case *syntax.CmdSubst:
			subs = append(subs, stmtsText(v.Stmts))
			return false
		case *syntax.ProcSubst:
			subs = append(subs, stmtsText(v.Stmts))
			return false
		}
		return true
	})
	return subs
}

func stmtsText(stmts []*syntax.Stmt) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		parts = append(parts, printNode(s))
	}
	return strings.Join(parts, "; ")
}
