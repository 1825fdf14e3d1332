// Copyright PolyHorn Contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/polyhorn/go-polyhorn/pkg/assembler"
	"github.com/polyhorn/go-polyhorn/pkg/encoder"
	"github.com/polyhorn/go-polyhorn/pkg/poly"
	"github.com/spf13/cobra"
)

// Settings mirrors the configuration file.  YAML and JSON inputs are both
// accepted, JSON being a subset of YAML.
type Settings struct {
	// TheoremName selects the certificate construction ("farkas",
	// "handelman", "putinar" or "auto").
	TheoremName string `yaml:"theorem_name"`
	// SolverName of the external SMT solver.
	SolverName string `yaml:"solver_name"`
	// OutputPath for the generated SMT-LIB script, empty to discard it.
	OutputPath string `yaml:"output_path"`
	// DegreeOfSat bounds multiplier degree on the satisfying branch.
	DegreeOfSat int `yaml:"degree_of_sat"`
	// DegreeOfNonstrictUnsat bounds multiplier degree on the nonstrict
	// emptiness branch.
	DegreeOfNonstrictUnsat int `yaml:"degree_of_nonstrict_unsat"`
	// DegreeOfStrictUnsat bounds template degree on the strict emptiness
	// branch.
	DegreeOfStrictUnsat int `yaml:"degree_of_strict_unsat"`
	// MaxDOfStrict is the witness power on the strict emptiness branch.
	MaxDOfStrict int `yaml:"max_d_of_strict"`
	// SatHeuristic restricts encoding to the satisfying branch.
	SatHeuristic bool `yaml:"SAT_heuristic"`
	// UnsatCoreHeuristic pins auxiliary variables to zero, releasing them
	// under unsat core guidance.
	UnsatCoreHeuristic bool `yaml:"unsat_core_heuristic"`
	// IntegerArithmetic ranges unknown and auxiliary variables over the
	// integers rather than the reals.
	IntegerArithmetic bool `yaml:"integer_arithmetic"`
	// ConstantElimination substitutes away constant-pinned auxiliaries
	// before dispatch.  Only effective together with SatHeuristic.
	ConstantElimination bool `yaml:"constant_elimination"`
}

// DefaultSettings returns the settings assumed when no configuration file is
// given.
func DefaultSettings() Settings {
	return Settings{
		TheoremName: "auto",
		SolverName:  "z3",
	}
}

// LoadSettings reads the configuration file named by the persistent --config
// flag, if any, over the defaults.
func LoadSettings(cmd *cobra.Command) (Settings, error) {
	settings := DefaultSettings()
	//
	path := GetString(cmd, "config")
	if path == "" {
		return settings, nil
	}
	//
	bytes, err := os.ReadFile(path)
	if err != nil {
		return settings, err
	}
	//
	if err := yaml.Unmarshal(bytes, &settings); err != nil {
		return settings, fmt.Errorf("%s: %w", path, err)
	}
	//
	return settings, nil
}

// AssemblerConfig lowers the settings onto the clause compiler.
func (s Settings) AssemblerConfig() (assembler.Config, error) {
	theorem, err := encoder.ParseTheorem(s.TheoremName)
	if err != nil {
		return assembler.Config{}, err
	}
	//
	domain := poly.Real
	if s.IntegerArithmetic {
		domain = poly.Integer
	}
	//
	return assembler.Config{
		Encoder: encoder.Config{
			Theorem:                theorem,
			DegreeOfSat:            s.DegreeOfSat,
			DegreeOfNonstrictUnsat: s.DegreeOfNonstrictUnsat,
			DegreeOfStrictUnsat:    s.DegreeOfStrictUnsat,
			MaxDOfStrict:           s.MaxDOfStrict,
			Domain:                 domain,
		},
		AssumeSAT:          s.SatHeuristic,
		EliminateConstants: s.ConstantElimination,
		Parallel:           true,
	}, nil
}
