package csource

import (
	"testing"

	"github.com/BanisharifM/CFGs/pkg/omp"
)

const sample = `#include <stdio.h>

void lu0(float *diag) {
	diag[0] = 1.0f;
}

int sparselu_par(float **BENCH, int size) {
	int kk;
	#pragma omp parallel private(kk)
	{
		for (kk = 0; kk < size; kk++) {
			#pragma omp single
			lu0(BENCH[kk]);
		}
	}
	return 0;
}
`

func TestFunctions(t *testing.T) {
	spans := Functions([]byte(sample))
	if len(spans) != 2 {
		t.Fatalf("expected 2 functions, got %d: %+v", len(spans), spans)
	}
	if spans[0].Name != "lu0" {
		t.Errorf("first function = %q, want lu0", spans[0].Name)
	}
	if spans[1].Name != "sparselu_par" {
		t.Errorf("second function = %q, want sparselu_par", spans[1].Name)
	}
	if spans[1].StartLine >= spans[1].EndLine {
		t.Errorf("bad span %+v", spans[1])
	}
}

func TestFunctionAt(t *testing.T) {
	spans := []FunctionSpan{
		{Name: "outer", StartLine: 1, EndLine: 20},
		{Name: "inner", StartLine: 5, EndLine: 10},
	}

	tests := []struct {
		line int
		want string
	}{
		{1, "outer"},
		{7, "inner"},
		{15, "outer"},
		{25, ""},
	}

	for _, tt := range tests {
		if got := FunctionAt(spans, tt.line); got != tt.want {
			t.Errorf("FunctionAt(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestAnnotate(t *testing.T) {
	set := omp.Extract(sample)
	if len(set.ParallelRegions) != 1 || len(set.SingleRegions) != 1 {
		t.Fatalf("unexpected extraction: %+v", set)
	}

	annotated := Annotate(set, []byte(sample))
	if got := annotated.ParallelRegions[0].Function; got != "sparselu_par" {
		t.Errorf("parallel region function = %q, want sparselu_par", got)
	}
	if got := annotated.SingleRegions[0].Function; got != "sparselu_par" {
		t.Errorf("single region function = %q, want sparselu_par", got)
	}

	// Input set stays untouched.
	if set.ParallelRegions[0].Function != "" {
		t.Error("Annotate mutated its input")
	}
}

func TestAnnotateUnparseableSource(t *testing.T) {
	set := omp.Extract("#pragma omp parallel")
	annotated := Annotate(set, []byte("#pragma omp parallel"))
	if annotated.ParallelRegions[0].Function != "" {
		t.Errorf("expected no annotation, got %q", annotated.ParallelRegions[0].Function)
	}
}
