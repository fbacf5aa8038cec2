package shellwalk

import (
	"fmt"
	"unicode/utf8"

	"github.com/anthropics/cc-toolgate/internal/decision"
)

// SmugglingThreat is a single Unicode-obfuscation indicator found in a raw
// command string, adapted from the teacher's internal/unicode/scanner.go —
// ported here with string severities ("block"/"audit") replaced by the
// Decision type so the evaluator can fold it straight into the worst-wins
// aggregation instead of re-parsing a string.
type SmugglingThreat struct {
	Category    string
	Description string
	Position    int
	Codepoint   string
	Severity    decision.Decision
}

// SmugglingScan inspects a command string for zero-width characters,
// bidirectional overrides, Unicode tag characters, unsafe control
// characters, and Cyrillic/Greek homoglyphs of Latin letters — all
// techniques for hiding or disguising shell content from a human reviewer
// while still executing as written.
func SmugglingScan(input string) []SmugglingThreat {
	var threats []SmugglingThreat

	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])

		if r == utf8.RuneError && size == 1 {
			threats = append(threats, SmugglingThreat{
				Category:    "invalid-utf8",
				Description: "invalid UTF-8 byte sequence",
				Position:    i,
				Codepoint:   fmt.Sprintf("0x%02X", input[i]),
				Severity:    decision.Deny,
			})
			i++
			continue
		}

		if threat, found := classifyRune(r, i); found {
			threats = append(threats, threat)
		}
		i += size
	}

	return threats
}

func classifyRune(r rune, pos int) (SmugglingThreat, bool) {
	cp := fmt.Sprintf("U+%04X", r)

	if isZeroWidth(r) {
		return SmugglingThreat{
			Category:    "zero-width",
			Description: fmt.Sprintf("zero-width character %s can hide content from display", cp),
			Position:    pos,
			Codepoint:   cp,
			Severity:    decision.Deny,
		}, true
	}

	if isBidiOverride(r) {
		return SmugglingThreat{
			Category:    "bidi-override",
			Description: fmt.Sprintf("bidirectional override %s can make displayed text differ from executed text", cp),
			Position:    pos,
			Codepoint:   cp,
			Severity:    decision.Deny,
		}, true
	}

	if isTagCharacter(r) {
		return SmugglingThreat{
			Category:    "tag-char",
			Description: fmt.Sprintf("Unicode tag character %s can smuggle hidden instructions", cp),
			Position:    pos,
			Codepoint:   cp,
			Severity:    decision.Deny,
		}, true
	}

	if isUnsafeControl(r) {
		return SmugglingThreat{
			Category:    "control-char",
			Description: fmt.Sprintf("control character %s should not appear in commands", cp),
			Position:    pos,
			Codepoint:   cp,
			Severity:    decision.Deny,
		}, true
	}

	if cat, desc := checkHomoglyph(r); cat != "" {
		return SmugglingThreat{
			Category:    cat,
			Description: desc,
			Position:    pos,
			Codepoint:   cp,
			Severity:    decision.Ask,
		}, true
	}

	return SmugglingThreat{}, false
}

func isZeroWidth(r rune) bool {
	switch r {
	case '​', // ZERO WIDTH SPACE
		'‌', // ZERO WIDTH NON-JOINER
		'‍', // ZERO WIDTH JOINER
		0xFEFF, // ZERO WIDTH NO-BREAK SPACE (BOM)
		'⁠', // WORD JOINER
		'᠎', // MONGOLIAN VOWEL SEPARATOR
		'‎', // LEFT-TO-RIGHT MARK
		'‏': // RIGHT-TO-LEFT MARK
		return true
	}
	return false
}

func isBidiOverride(r rune) bool {
	switch r {
	case '‪', // LEFT-TO-RIGHT EMBEDDING
		'‫', // RIGHT-TO-LEFT EMBEDDING
		'‬', // POP DIRECTIONAL FORMATTING
		'‭', // LEFT-TO-RIGHT OVERRIDE
		'‮', // RIGHT-TO-LEFT OVERRIDE
		'⁦', // LEFT-TO-RIGHT ISOLATE
		'⁧', // RIGHT-TO-LEFT ISOLATE
		'⁨', // FIRST STRONG ISOLATE
		'⁩': // POP DIRECTIONAL ISOLATE
		return true
	}
	return false
}

func isTagCharacter(r rune) bool {
	return r >= 0xE0001 && r <= 0xE007F
}

func isUnsafeControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	if r >= 0x00 && r <= 0x1F {
		return true
	}
	if r == 0x7F {
		return true
	}
	if r >= 0x80 && r <= 0x9F {
		return true
	}
	return false
}

// checkHomoglyph detects Cyrillic/Greek letters that visually resemble
// Latin letters, a technique borrowed from IDN homograph attacks.
func checkHomoglyph(r rune) (category string, description string) {
	cp := fmt.Sprintf("U+%04X", r)
	switch r {
	case 'а', 'е', 'о', 'р', 'с', 'у', 'х',
		'А', 'Е', 'О', 'Р', 'С', 'У', 'Х':
		return "cyrillic-homoglyph", fmt.Sprintf("Cyrillic character %s visually resembles a Latin letter", cp)
	case 'Α', 'Β', 'Ε', 'Ζ', 'Η', 'Ι', 'Κ',
		'Μ', 'Ν', 'Ο', 'Ρ', 'Τ', 'Υ', 'Χ':
		return "greek-homoglyph", fmt.Sprintf("Greek character %s visually resembles a Latin letter", cp)
	}
	return "", ""
}
