// Package hwspec loads the hardware description record attached to a
// generation run. The record is passed through to prompt assembly; no
// pipeline decision depends on it.
package hwspec

import (
	"encoding/json"
	"fmt"
	"os"
)

// Spec describes the target hardware for a benchmark run.
type Spec struct {
	Cores  int    `json:"cores"`
	Arch   string `json:"arch"`
	Memory string `json:"memory"`
	L1     string `json:"l1_cache,omitempty"`
	L2     string `json:"l2_cache,omitempty"`
	L3     string `json:"l3_cache,omitempty"`
}

// Default returns the hardware description assumed when none is provided.
func Default() Spec {
	return Spec{
		Cores:  8,
		Arch:   "x86_64",
		Memory: "16GB",
	}
}

// Load reads a spec from a JSON file. Missing fields fall back to defaults.
func Load(path string) (Spec, error) {
	spec := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("reading hardware spec %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("parsing hardware spec %s: %w", path, err)
	}

	if spec.Cores <= 0 {
		spec.Cores = Default().Cores
	}
	if spec.Arch == "" {
		spec.Arch = Default().Arch
	}
	if spec.Memory == "" {
		spec.Memory = Default().Memory
	}
	return spec, nil
}
