// Package recipe reads the declarative JSON recipe file and decodes it
// into a loosely-typed tree the compiler package walks (spec §4.5/§6).
// It is modeled on loader.Load: a path in, a typed error out, no
// further interpretation performed here.
package recipe

import (
	"encoding/json"
	"os"

	"github.com/sarchlab/mcrecipe/errkind"
)

// SimulationConfig is simulation_config from the recipe JSON.
type SimulationConfig struct {
	NumTrials  int    `json:"num_trials"`
	OutputFile string `json:"output_file"`
}

// Validate checks the fields the compiler requires to be sane before
// it ever builds a Program, the same role TimingConfig.Validate plays
// for the teacher's timing model.
func (c *SimulationConfig) Validate() error {
	if c.NumTrials <= 0 {
		return errkind.New(errkind.RecipeConfigError, "simulation_config.num_trials must be > 0, got %d", c.NumTrials)
	}
	return nil
}

// Step is one raw step node, decoded permissively: only the fields
// relevant to its "type" are populated, the rest left as raw JSON for
// the compiler to interpret positionally.
type Step struct {
	Type string `json:"type"`

	// literal_assignment
	Result json.RawMessage `json:"result"`
	Value  json.RawMessage `json:"value"`

	// execution_assignment
	Function string            `json:"function"`
	Args     []json.RawMessage `json:"args"`

	// conditional_assignment
	Condition json.RawMessage `json:"condition"`
	ThenExpr  json.RawMessage `json:"then_expr"`
	ElseExpr  json.RawMessage `json:"else_expr"`

	Line int `json:"line"`
}

// Raw is the recipe file decoded into its JSON shape, before the
// compiler resolves names to slots and functions to factories. Both
// the name-based schema (output_variable) and the legacy
// variable_registry/output_variable_index schema (spec §6 "External
// Interfaces") are represented; the compiler picks whichever is
// populated.
type Raw struct {
	SimulationConfig SimulationConfig `json:"simulation_config"`

	OutputVariable string `json:"output_variable"`

	// legacy schema
	VariableRegistry   []string `json:"variable_registry"`
	OutputVariableIdx  *int     `json:"output_variable_index"`

	PreTrialSteps []Step `json:"pre_trial_steps"`
	PerTrialSteps []Step `json:"per_trial_steps"`
}

// Load reads and decodes path into a Raw recipe tree. A missing or
// unreadable file fails RecipeFileNotFound; malformed JSON fails
// RecipeParseError — the same os.ReadFile/decode split loader.Load
// uses for ELF files, generalized to the recipe's JSON shape.
func Load(path string) (*Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errkind.New(errkind.RecipeFileNotFound, "recipe file not found: %s", path)
	}

	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errkind.New(errkind.RecipeParseError, "failed to parse recipe %s: %v", path, err)
	}

	if err := raw.SimulationConfig.Validate(); err != nil {
		return nil, err
	}

	return &raw, nil
}
