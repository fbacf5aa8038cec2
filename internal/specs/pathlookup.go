package specs

import (
	"os"
	"path/filepath"
)

// resolvePath implements the PATH-search half of SimpleSpec's lookup:
// if word already contains a separator it is
// taken as the candidate path verbatim (absolute-ified against the
// working directory when possible); otherwise PATH is searched
// left-to-right for the first existing, executable entry.
func resolvePath(word string) (string, bool) {
	if word == "" {
		return "", false
	}
	if containsSeparator(word) {
		if abs, err := filepath.Abs(word); err == nil {
			return abs, true
		}
		return word, true
	}

	pathEnv := os.Getenv("PATH")
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, word)
		if isExecutableFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// canonicalize resolves symlinks. A failure here is a
// LookupUnavailable condition (SPEC_FULL.md §4.3's error taxonomy): the
// caller must treat it as "no canonical form available", never as a
// reason to relax the verdict.
func canonicalize(path string) (string, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	return resolved, true
}

func containsSeparator(word string) bool {
	return filepath.Separator == '/' && (len(word) > 0 && (hasRune(word, '/')))
}

func hasRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}

func basename(word string) string {
	return filepath.Base(word)
}
