package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BanisharifM/CFGs/pkg/cfg"
	"github.com/BanisharifM/CFGs/pkg/csource"
	"github.com/BanisharifM/CFGs/pkg/omp"
	"github.com/BanisharifM/CFGs/pkg/pattern"
)

// pipelineResult bundles the outcome of one extraction-to-validation run.
type pipelineResult struct {
	Set    *omp.ConstructSet `json:"constructs"`
	Tag    pattern.Tag       `json:"pattern"`
	Graph  *cfg.Graph        `json:"graph"`
	Report *cfg.Report       `json:"validation"`
}

// runPipeline executes the core stages on one source text: extraction,
// function-scope annotation, classification, synthesis, validation.
func runPipeline(source string) (*pipelineResult, error) {
	set := csource.Annotate(omp.Extract(source), []byte(source))
	tag := pattern.Classify(set, source)

	graph, err := cfg.Synthesize(tag, set)
	if err != nil {
		return nil, fmt.Errorf("synthesizing graph: %w", err)
	}

	return &pipelineResult{
		Set:    set,
		Tag:    tag,
		Graph:  graph,
		Report: cfg.Validate(graph, set),
	}, nil
}

// readSource loads a source file, rejecting directories and empty files.
func readSource(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, expected a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("input file is empty: %s", path)
	}
	return string(data), nil
}

// writeDOT writes the serialized graph to <output>/<stem>_cfg.dot and
// returns the written path.
func writeDOT(g *cfg.Graph, outputDir, sourcePath string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	dotPath := filepath.Join(outputDir, stem+"_cfg.dot")
	if err := os.WriteFile(dotPath, []byte(g.DOT()), 0o644); err != nil {
		return "", fmt.Errorf("writing DOT file: %w", err)
	}
	return dotPath, nil
}

// writeDOTString writes already-serialized DOT text using the same naming
// scheme as writeDOT.
func writeDOTString(dot, outputDir, sourcePath string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	dotPath := filepath.Join(outputDir, stem+"_cfg.dot")
	if err := os.WriteFile(dotPath, []byte(dot), 0o644); err != nil {
		return "", fmt.Errorf("writing DOT file: %w", err)
	}
	return dotPath, nil
}

// printChecks prints validation outcomes in a stable order.
func printChecks(checks map[string]bool) {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		status := "PASS"
		if !checks[name] {
			status = "FAIL"
		}
		fmt.Printf("  %s: %s\n", name, status)
	}
}
