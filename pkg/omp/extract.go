package omp

import (
	"strings"
	"unicode"
)

// Introducer is the token that marks an OpenMP directive line.
const Introducer = "#pragma omp"

// Directive keywords are consumed by categorization and never treated as
// clause names, even when followed by parentheses (e.g. critical(name)).
var directiveKeywords = map[string]bool{
	"pragma":   true,
	"omp":      true,
	"parallel": true,
	"task":     true,
	"taskwait": true,
	"for":      true,
	"do":       true,
	"single":   true,
	"sections": true,
	"section":  true,
	"barrier":  true,
	"critical": true,
	"atomic":   true,
	"master":   true,
}

// Bare clauses carry no argument list; their presence alone is meaningful.
var bareClauses = map[string]bool{
	"untied":    true,
	"tied":      true,
	"nowait":    true,
	"mergeable": true,
}

// Extract scans source text line by line and returns the set of recognized
// OpenMP constructs. It is a pure function of the input: malformed directive
// text is skipped, never an error, and empty input yields an empty set.
func Extract(source string) *ConstructSet {
	set := &ConstructSet{}

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, Introducer) {
			continue
		}

		cat, ok := categorize(trimmed)
		if !ok {
			// Introducer with no recognized construct keyword. Permissive
			// parsing: skip silently.
			continue
		}

		c := Construct{
			Category: cat,
			Line:     i + 1,
			Pragma:   trimmed,
			Clauses:  parseClauses(trimmed),
		}

		switch cat {
		case CategoryParallelRegion:
			set.ParallelRegions = append(set.ParallelRegions, c)
		case CategoryTask:
			set.Tasks = append(set.Tasks, c)
		case CategoryForLoop:
			set.ForLoops = append(set.ForLoops, c)
		case CategorySingleRegion:
			set.SingleRegions = append(set.SingleRegions, c)
		case CategorySections:
			set.Sections = append(set.Sections, c)
		case CategorySyncPoint:
			set.SyncPoints = append(set.SyncPoints, c)
		}
	}

	return set
}

// categorize assigns the single best-matching category for a directive line.
// The priority order is fixed: a combined "parallel for" counts as a loop,
// and "task" wins over "for" except when the line is a taskwait.
func categorize(line string) (Category, bool) {
	switch {
	case strings.Contains(line, "parallel") && !strings.Contains(line, "for"):
		return CategoryParallelRegion, true
	case strings.Contains(line, "task") && !strings.Contains(line, "taskwait"):
		return CategoryTask, true
	case strings.Contains(line, "for"):
		return CategoryForLoop, true
	case strings.Contains(line, "single"):
		return CategorySingleRegion, true
	case strings.Contains(line, "sections"):
		return CategorySections, true
	case strings.Contains(line, "barrier"),
		strings.Contains(line, "taskwait"),
		strings.Contains(line, "critical"):
		return CategorySyncPoint, true
	}
	return "", false
}

// parseClauses tokenizes a directive line into its trailing clauses. Tokens
// of the form name(a, b) map to an argument list; recognized bare tokens
// (untied, nowait) map to a presence flag. Anything else is ignored.
func parseClauses(line string) Clauses {
	clauses := Clauses{}

	i := 0
	for i < len(line) {
		r := rune(line[i])
		if !isIdentRune(r) {
			i++
			continue
		}

		start := i
		for i < len(line) && isIdentRune(rune(line[i])) {
			i++
		}
		name := line[start:i]

		// Skip whitespace between the name and a possible argument list.
		j := i
		for j < len(line) && line[j] == ' ' {
			j++
		}

		if j < len(line) && line[j] == '(' {
			args, next := parseArgs(line, j)
			i = next
			if !directiveKeywords[name] {
				clauses[name] = ClauseValue{Args: args}
			}
			continue
		}

		if bareClauses[name] {
			clauses[name] = ClauseValue{}
		}
	}

	return clauses
}

// parseArgs consumes a parenthesized argument list starting at the opening
// paren and returns the trimmed arguments plus the index after the closing
// paren. An unterminated list runs to end of line.
func parseArgs(line string, open int) ([]string, int) {
	depth := 0
	end := -1
	for k := open; k < len(line) && end < 0; k++ {
		switch line[k] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = k
			}
		}
	}

	inner := line[open+1:]
	next := len(line)
	if end >= 0 {
		inner = line[open+1 : end]
		next = end + 1
	}

	args := []string{}
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			args = append(args, part)
		}
	}
	return args, next
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
