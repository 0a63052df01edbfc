package cfg

import (
	"strings"
	"testing"

	"github.com/BanisharifM/CFGs/pkg/omp"
	"github.com/BanisharifM/CFGs/pkg/pattern"
)

var allTags = []pattern.Tag{
	pattern.TagBasic,
	pattern.TagParallelFor,
	pattern.TagTaskParallel,
	pattern.TagSparseLU,
}

func TestSynthesizeTemplates(t *testing.T) {
	tests := []struct {
		tag           pattern.Tag
		wantName      string
		wantNodes     int
		wantTaskLoops int
		wantLoopBacks int
	}{
		{pattern.TagBasic, "Basic_CFG", 3, 0, 0},
		{pattern.TagParallelFor, "ParallelFor_CFG", 7, 0, 1},
		{pattern.TagTaskParallel, "TaskParallel_CFG", 8, 1, 0},
		{pattern.TagSparseLU, "SparseLU_CFG", 14, 3, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			g, err := Synthesize(tt.tag, &omp.ConstructSet{})
			if err != nil {
				t.Fatalf("Synthesize(%v): %v", tt.tag, err)
			}
			if g.Name != tt.wantName {
				t.Errorf("name = %q, want %q", g.Name, tt.wantName)
			}
			if len(g.Nodes) != tt.wantNodes {
				t.Errorf("node count = %d, want %d", len(g.Nodes), tt.wantNodes)
			}

			taskLoops, loopBacks := 0, 0
			for _, e := range g.Edges {
				switch e.Kind {
				case EdgeTaskInstance:
					taskLoops++
				case EdgeLoopBack:
					loopBacks++
				}
			}
			if taskLoops != tt.wantTaskLoops {
				t.Errorf("task-instance edges = %d, want %d", taskLoops, tt.wantTaskLoops)
			}
			if loopBacks != tt.wantLoopBacks {
				t.Errorf("loop-back edges = %d, want %d", loopBacks, tt.wantLoopBacks)
			}
		})
	}
}

// Every template must produce exactly one entry, at least one exit reachable
// from it, and no dangling edge endpoints.
func TestSynthesizeStructuralInvariants(t *testing.T) {
	for _, tag := range allTags {
		t.Run(string(tag), func(t *testing.T) {
			g, err := Synthesize(tag, &omp.ConstructSet{})
			if err != nil {
				t.Fatalf("Synthesize(%v): %v", tag, err)
			}

			entries := g.EntryNodes()
			if len(entries) != 1 {
				t.Fatalf("expected exactly 1 entry node, got %d", len(entries))
			}
			exits := g.ExitNodes()
			if len(exits) == 0 {
				t.Fatal("expected at least 1 exit node")
			}

			reachable := false
			for _, ex := range exits {
				if g.Reachable(entries[0].ID, ex.ID) {
					reachable = true
				}
			}
			if !reachable {
				t.Error("no exit node reachable from entry")
			}

			ids := map[string]bool{}
			order := map[string]int{}
			for i, n := range g.Nodes {
				if ids[n.ID] {
					t.Errorf("duplicate node id %q", n.ID)
				}
				ids[n.ID] = true
				order[n.ID] = i
			}
			for _, e := range g.Edges {
				if !ids[e.From] || !ids[e.To] {
					t.Errorf("edge %s -> %s references undeclared node", e.From, e.To)
				}
				if e.Kind == EdgeLoopBack && order[e.To] >= order[e.From] {
					t.Errorf("loop-back edge %s -> %s does not target an earlier node", e.From, e.To)
				}
			}
		})
	}
}

func TestSynthesizeBasicHasNoParallelNodes(t *testing.T) {
	g, err := Synthesize(pattern.TagBasic, &omp.ConstructSet{})
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range g.Nodes {
		if n.Role == RoleRegionBoundary || n.Role == RoleSync {
			t.Errorf("basic template contains %s node %s", n.Role, n.ID)
		}
	}
	for _, e := range g.Edges {
		if e.Kind == EdgeTaskInstance {
			t.Errorf("basic template contains task-instance edge %s -> %s", e.From, e.To)
		}
	}
}

func TestSynthesizeLabelEnrichment(t *testing.T) {
	set := omp.Extract(`#pragma omp parallel private(kk)
#pragma omp task untied firstprivate(kk, jj)`)

	g, err := Synthesize(pattern.TagTaskParallel, set)
	if err != nil {
		t.Fatal(err)
	}

	start := g.NodeByID("BB_parallel_start")
	if start == nil {
		t.Fatal("missing BB_parallel_start")
	}
	if !strings.Contains(start.Label, "line 1") || !strings.Contains(start.Label, "#pragma omp parallel private(kk)") {
		t.Errorf("parallel start label not enriched: %q", start.Label)
	}

	task := g.NodeByID("BB_task_create")
	if task == nil {
		t.Fatal("missing BB_task_create")
	}
	if !strings.Contains(task.Label, "line 2") {
		t.Errorf("task create label not enriched: %q", task.Label)
	}
}

func TestSynthesizeUnknownTag(t *testing.T) {
	if _, err := Synthesize(pattern.Tag("pipeline"), &omp.ConstructSet{}); err == nil {
		t.Error("expected error for unrecognized tag")
	}
}

func TestSynthesizeNilSet(t *testing.T) {
	g, err := Synthesize(pattern.TagSparseLU, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 14 {
		t.Errorf("node count = %d, want 14", len(g.Nodes))
	}
}
