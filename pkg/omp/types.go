// Package omp defines data structures for OpenMP directives extracted from
// C source text. It provides types for individual directive occurrences,
// their clauses, and the per-file construct set consumed by pattern
// classification and graph synthesis.
package omp

import (
	"encoding/json"
	"sort"
)

// Category represents the kind of OpenMP construct a directive introduces.
type Category string

const (
	CategoryParallelRegion Category = "parallel" // #pragma omp parallel
	CategoryTask           Category = "task"     // #pragma omp task
	CategoryForLoop        Category = "for"      // #pragma omp for / parallel for
	CategorySingleRegion   Category = "single"   // #pragma omp single
	CategorySections       Category = "sections" // #pragma omp sections
	CategorySyncPoint      Category = "synchronization"
)

// ClauseValue holds one parsed clause. A clause is either a bare presence
// flag (untied, nowait) or carries an argument list (private(a, b)).
// Args is nil for bare clauses.
type ClauseValue struct {
	Args []string
}

// Bare reports whether the clause was written without arguments.
func (v ClauseValue) Bare() bool { return v.Args == nil }

// MarshalJSON renders bare clauses as true and argument clauses as arrays,
// matching the interchange shape consumed by the prompt builder.
func (v ClauseValue) MarshalJSON() ([]byte, error) {
	if v.Bare() {
		return json.Marshal(true)
	}
	return json.Marshal(v.Args)
}

// Clauses maps clause names to their parsed values.
type Clauses map[string]ClauseValue

// Construct represents one recognized directive occurrence. It is immutable
// once created by the extractor.
type Construct struct {
	Category Category // assigned category
	Line     int      // 1-based source line number
	Pragma   string   // the directive line, trimmed
	Function string   // enclosing C function, when annotated (optional)
	Clauses  Clauses
}

// Has reports whether the named clause is present, bare or with arguments.
func (c *Construct) Has(name string) bool {
	_, ok := c.Clauses[name]
	return ok
}

// MarshalJSON emits the flat interchange object {line, pragma, type,
// ...clauses} used by the prompt builder and test fixtures.
func (c Construct) MarshalJSON() ([]byte, error) {
	obj := map[string]interface{}{
		"line":   c.Line,
		"pragma": c.Pragma,
		"type":   string(c.Category),
	}
	if c.Function != "" {
		obj["function"] = c.Function
	}
	for name, val := range c.Clauses {
		obj[name] = val
	}
	return json.Marshal(obj)
}

// ConstructSet aggregates all constructs recognized in one source file,
// grouped by category in source order. It is created fresh per extraction
// and read-only afterwards.
type ConstructSet struct {
	ParallelRegions []Construct `json:"parallel_regions"`
	Tasks           []Construct `json:"tasks"`
	ForLoops        []Construct `json:"for_loops"`
	SingleRegions   []Construct `json:"single_regions"`
	Sections        []Construct `json:"sections"`
	SyncPoints      []Construct `json:"sync_points"`
}

// Empty reports whether no directives were recognized.
func (s *ConstructSet) Empty() bool { return s.Len() == 0 }

// Len returns the total number of recognized directives.
func (s *ConstructSet) Len() int {
	return len(s.ParallelRegions) + len(s.Tasks) + len(s.ForLoops) +
		len(s.SingleRegions) + len(s.Sections) + len(s.SyncPoints)
}

// All returns every construct in source-line order.
func (s *ConstructSet) All() []Construct {
	out := make([]Construct, 0, s.Len())
	out = append(out, s.ParallelRegions...)
	out = append(out, s.Tasks...)
	out = append(out, s.ForLoops...)
	out = append(out, s.SingleRegions...)
	out = append(out, s.Sections...)
	out = append(out, s.SyncPoints...)
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// First returns the first construct of the given category, or nil.
func (s *ConstructSet) First(cat Category) *Construct {
	var group []Construct
	switch cat {
	case CategoryParallelRegion:
		group = s.ParallelRegions
	case CategoryTask:
		group = s.Tasks
	case CategoryForLoop:
		group = s.ForLoops
	case CategorySingleRegion:
		group = s.SingleRegions
	case CategorySections:
		group = s.Sections
	case CategorySyncPoint:
		group = s.SyncPoints
	}
	if len(group) == 0 {
		return nil
	}
	return &group[0]
}

// Clone returns a deep copy of the set. Annotation passes copy rather than
// mutate, keeping extractor output read-only.
func (s *ConstructSet) Clone() *ConstructSet {
	out := &ConstructSet{}
	out.ParallelRegions = cloneConstructs(s.ParallelRegions)
	out.Tasks = cloneConstructs(s.Tasks)
	out.ForLoops = cloneConstructs(s.ForLoops)
	out.SingleRegions = cloneConstructs(s.SingleRegions)
	out.Sections = cloneConstructs(s.Sections)
	out.SyncPoints = cloneConstructs(s.SyncPoints)
	return out
}

func cloneConstructs(in []Construct) []Construct {
	if in == nil {
		return nil
	}
	out := make([]Construct, len(in))
	for i, c := range in {
		clauses := make(Clauses, len(c.Clauses))
		for name, val := range c.Clauses {
			cv := ClauseValue{}
			if val.Args != nil {
				cv.Args = append([]string(nil), val.Args...)
			}
			clauses[name] = cv
		}
		c.Clauses = clauses
		out[i] = c
	}
	return out
}
