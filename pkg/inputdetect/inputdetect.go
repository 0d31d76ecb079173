// Package inputdetect guesses whether a piece of source code reads from
// stdin, so a code-runner host can collect input up front instead of
// hanging a run. This is a best-effort regex classifier; it does not parse
// the language and will miss indirect reads. False positives just show an
// input box the user leaves empty, so precision matters less than recall.
package inputdetect

import (
	"regexp"
	"strings"
)

var patterns = map[string][]*regexp.Regexp{
	"python": {
		regexp.MustCompile(`\binput\s*\(`),
		regexp.MustCompile(`\bsys\.stdin\b`),
	},
	"javascript": {
		regexp.MustCompile(`\bprompt\s*\(`),
		regexp.MustCompile(`\breadline\b`),
		regexp.MustCompile(`\bprocess\.stdin\b`),
	},
	"java": {
		regexp.MustCompile(`new\s+Scanner\s*\(\s*System\.in\s*\)`),
		regexp.MustCompile(`System\.console\s*\(\s*\)`),
		regexp.MustCompile(`new\s+BufferedReader\s*\(\s*new\s+InputStreamReader\s*\(\s*System\.in`),
	},
	"c": {
		regexp.MustCompile(`\bscanf\s*\(`),
		regexp.MustCompile(`\bgetchar\s*\(`),
		regexp.MustCompile(`\bgets\s*\(`),
		regexp.MustCompile(`\bfgets\s*\([^)]*\bstdin\b`),
	},
	"cpp": {
		regexp.MustCompile(`\bcin\s*>>`),
		regexp.MustCompile(`\bgetline\s*\(\s*(std::)?cin\b`),
		regexp.MustCompile(`\bscanf\s*\(`),
	},
	"go": {
		regexp.MustCompile(`\bfmt\.Scan`),
		regexp.MustCompile(`\bbufio\.New(Reader|Scanner)\s*\(\s*os\.Stdin\s*\)`),
	},
	"ruby": {
		regexp.MustCompile(`\bgets\b`),
		regexp.MustCompile(`\bSTDIN\b`),
	},
}

var aliases = map[string]string{
	"py":         "python",
	"python3":    "python",
	"js":         "javascript",
	"node":       "javascript",
	"nodejs":     "javascript",
	"typescript": "javascript",
	"ts":         "javascript",
	"c++":        "cpp",
	"golang":     "go",
	"rb":         "ruby",
}

// RequiresInput reports whether the given source likely reads from stdin.
// Unknown languages always report false.
func RequiresInput(language, source string) bool {
	lang := strings.ToLower(strings.TrimSpace(language))
	if canonical, ok := aliases[lang]; ok {
		lang = canonical
	}
	for _, re := range patterns[lang] {
		if re.MatchString(source) {
			return true
		}
	}
	return false
}

// Supported returns whether the classifier knows the given language at all.
func Supported(language string) bool {
	lang := strings.ToLower(strings.TrimSpace(language))
	if canonical, ok := aliases[lang]; ok {
		lang = canonical
	}
	_, ok := patterns[lang]
	return ok
}
