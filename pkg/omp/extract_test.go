package omp

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		source string
		check  func(*testing.T, *ConstructSet)
	}{
		{
			name: "parallel region",
			source: `
int main() {
#pragma omp parallel
    {
    }
}
`,
			check: func(t *testing.T, s *ConstructSet) {
				if len(s.ParallelRegions) != 1 {
					t.Fatalf("expected 1 parallel region, got %d", len(s.ParallelRegions))
				}
				c := s.ParallelRegions[0]
				if c.Line != 3 {
					t.Errorf("expected line 3, got %d", c.Line)
				}
				if c.Pragma != "#pragma omp parallel" {
					t.Errorf("unexpected pragma %q", c.Pragma)
				}
			},
		},
		{
			name:   "task with clauses",
			source: "#pragma omp task untied firstprivate(kk, jj)",
			check: func(t *testing.T, s *ConstructSet) {
				if len(s.Tasks) != 1 {
					t.Fatalf("expected 1 task, got %d", len(s.Tasks))
				}
				c := s.Tasks[0]
				if !c.Has("untied") || !c.Clauses["untied"].Bare() {
					t.Errorf("expected bare untied clause, got %v", c.Clauses)
				}
				want := []string{"kk", "jj"}
				if !reflect.DeepEqual(c.Clauses["firstprivate"].Args, want) {
					t.Errorf("expected firstprivate %v, got %v", want, c.Clauses["firstprivate"].Args)
				}
			},
		},
		{
			name:   "parallel for is a loop",
			source: "#pragma omp parallel for private(i)",
			check: func(t *testing.T, s *ConstructSet) {
				if len(s.ParallelRegions) != 0 {
					t.Errorf("expected no parallel regions, got %d", len(s.ParallelRegions))
				}
				if len(s.ForLoops) != 1 {
					t.Fatalf("expected 1 for loop, got %d", len(s.ForLoops))
				}
				if !reflect.DeepEqual(s.ForLoops[0].Clauses["private"].Args, []string{"i"}) {
					t.Errorf("expected private(i), got %v", s.ForLoops[0].Clauses)
				}
			},
		},
		{
			name:   "for with nowait",
			source: "#pragma omp for nowait",
			check: func(t *testing.T, s *ConstructSet) {
				if len(s.ForLoops) != 1 {
					t.Fatalf("expected 1 for loop, got %d", len(s.ForLoops))
				}
				if !s.ForLoops[0].Has("nowait") {
					t.Errorf("expected nowait clause, got %v", s.ForLoops[0].Clauses)
				}
			},
		},
		{
			name:   "taskwait is a sync point, not a task",
			source: "#pragma omp taskwait",
			check: func(t *testing.T, s *ConstructSet) {
				if len(s.Tasks) != 0 {
					t.Errorf("expected no tasks, got %d", len(s.Tasks))
				}
				if len(s.SyncPoints) != 1 {
					t.Errorf("expected 1 sync point, got %d", len(s.SyncPoints))
				}
			},
		},
		{
			name: "barrier and critical are sync points",
			source: `#pragma omp barrier
#pragma omp critical
`,
			check: func(t *testing.T, s *ConstructSet) {
				if len(s.SyncPoints) != 2 {
					t.Fatalf("expected 2 sync points, got %d", len(s.SyncPoints))
				}
				if s.SyncPoints[0].Line != 1 || s.SyncPoints[1].Line != 2 {
					t.Errorf("unexpected lines %d, %d", s.SyncPoints[0].Line, s.SyncPoints[1].Line)
				}
			},
		},
		{
			name:   "single region",
			source: "  #pragma omp single  ",
			check: func(t *testing.T, s *ConstructSet) {
				if len(s.SingleRegions) != 1 {
					t.Fatalf("expected 1 single region, got %d", len(s.SingleRegions))
				}
				if s.SingleRegions[0].Pragma != "#pragma omp single" {
					t.Errorf("pragma not trimmed: %q", s.SingleRegions[0].Pragma)
				}
			},
		},
		{
			name:   "sections",
			source: "#pragma omp sections",
			check: func(t *testing.T, s *ConstructSet) {
				if len(s.Sections) != 1 {
					t.Errorf("expected 1 sections construct, got %d", len(s.Sections))
				}
			},
		},
		{
			name:   "unrecognized keyword is skipped",
			source: "#pragma omp simd",
			check: func(t *testing.T, s *ConstructSet) {
				if !s.Empty() {
					t.Errorf("expected empty set, got %d constructs", s.Len())
				}
			},
		},
		{
			name:   "empty input",
			source: "",
			check: func(t *testing.T, s *ConstructSet) {
				if !s.Empty() {
					t.Errorf("expected empty set, got %d constructs", s.Len())
				}
			},
		},
		{
			name: "no directives",
			source: `
int add(int a, int b) {
	return a + b;
}
`,
			check: func(t *testing.T, s *ConstructSet) {
				if !s.Empty() {
					t.Errorf("expected empty set, got %d constructs", s.Len())
				}
			},
		},
		{
			name:   "unrecognized trailing tokens ignored",
			source: "#pragma omp task frobnicate untied",
			check: func(t *testing.T, s *ConstructSet) {
				if len(s.Tasks) != 1 {
					t.Fatalf("expected 1 task, got %d", len(s.Tasks))
				}
				c := s.Tasks[0]
				if c.Has("frobnicate") {
					t.Errorf("unrecognized bare token should be ignored: %v", c.Clauses)
				}
				if !c.Has("untied") {
					t.Errorf("expected untied clause, got %v", c.Clauses)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Extract(tt.source))
		})
	}
}

// Every record's line must index the original text and carry its trimmed
// content as the pragma.
func TestExtractLineFidelity(t *testing.T) {
	source := `int main() {
  #pragma omp parallel shared(a)
  {
    #pragma omp single
    for (k = 0; k < n; k++) {
      #pragma omp task untied
      work(k);
    }
    #pragma omp taskwait
  }
}`
	lines := strings.Split(source, "\n")
	set := Extract(source)

	for _, c := range set.All() {
		if c.Line < 1 || c.Line > len(lines) {
			t.Fatalf("line %d out of range 1..%d", c.Line, len(lines))
		}
		if got := strings.TrimSpace(lines[c.Line-1]); got != c.Pragma {
			t.Errorf("line %d: pragma %q does not match source %q", c.Line, c.Pragma, got)
		}
	}
}

func TestExtractIdempotent(t *testing.T) {
	source := `#pragma omp parallel
#pragma omp for nowait
#pragma omp task untied firstprivate(x)
#pragma omp barrier`

	first := Extract(source)
	second := Extract(source)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestConstructJSONShape(t *testing.T) {
	set := Extract("#pragma omp task untied firstprivate(kk, jj)")
	if len(set.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(set.Tasks))
	}

	data, err := json.Marshal(set.Tasks[0])
	if err != nil {
		t.Fatalf("marshaling construct: %v", err)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("unmarshaling construct: %v", err)
	}

	if obj["line"] != float64(1) {
		t.Errorf("expected line 1, got %v", obj["line"])
	}
	if obj["type"] != "task" {
		t.Errorf("expected type task, got %v", obj["type"])
	}
	if obj["untied"] != true {
		t.Errorf("expected untied: true, got %v", obj["untied"])
	}
	if args, ok := obj["firstprivate"].([]interface{}); !ok || len(args) != 2 {
		t.Errorf("expected firstprivate [kk jj], got %v", obj["firstprivate"])
	}
}
