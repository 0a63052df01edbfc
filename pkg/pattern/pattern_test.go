package pattern

import (
	"testing"

	"github.com/BanisharifM/CFGs/pkg/omp"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Tag
	}{
		{
			name: "parallel plus task is task parallel",
			source: `#pragma omp parallel private(kk)
#pragma omp task untied firstprivate(kk, jj)`,
			want: TagTaskParallel,
		},
		{
			name: "parallel plus for is parallel for",
			source: `#pragma omp parallel
#pragma omp for nowait`,
			want: TagParallelFor,
		},
		{
			name:   "no directives is basic",
			source: "int main() { return 0; }",
			want:   TagBasic,
		},
		{
			name:   "empty source is basic",
			source: "",
			want:   TagBasic,
		},
		{
			name:   "task without parallel region is basic",
			source: "#pragma omp task untied",
			want:   TagBasic,
		},
		{
			name:   "sparselu name override with zero directives",
			source: "/* sparselu kernel */ int main() { return 0; }",
			want:   TagSparseLU,
		},
		{
			name:   "sparselu override is case insensitive",
			source: "void SparseLU_par(float **BENCH) {}",
			want:   TagSparseLU,
		},
		{
			name: "sparselu override beats structural signals",
			source: `/* sparselu */
#pragma omp parallel
#pragma omp task untied`,
			want: TagSparseLU,
		},
		{
			name:   "lu0 and fwd together trigger sparselu",
			source: "lu0(diag); fwd(diag, col);",
			want:   TagSparseLU,
		},
		{
			name:   "lu0 alone does not trigger sparselu",
			source: "lu0(diag);",
			want:   TagBasic,
		},
		{
			name: "task wins over for when both present",
			source: `#pragma omp parallel
#pragma omp for
#pragma omp task`,
			want: TagTaskParallel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := omp.Extract(tt.source)
			if got := Classify(set, tt.source); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Classification must depend only on category populations, not on record
// order within a category.
func TestClassifyOrderIndependent(t *testing.T) {
	set := &omp.ConstructSet{
		ParallelRegions: []omp.Construct{
			{Category: omp.CategoryParallelRegion, Line: 10, Pragma: "#pragma omp parallel"},
		},
		Tasks: []omp.Construct{
			{Category: omp.CategoryTask, Line: 20, Pragma: "#pragma omp task"},
			{Category: omp.CategoryTask, Line: 30, Pragma: "#pragma omp task untied"},
		},
	}

	permuted := &omp.ConstructSet{
		ParallelRegions: set.ParallelRegions,
		Tasks:           []omp.Construct{set.Tasks[1], set.Tasks[0]},
	}

	if a, b := Classify(set, ""), Classify(permuted, ""); a != b {
		t.Errorf("classification is order dependent: %v vs %v", a, b)
	}
}
